// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "testing"

func TestMayEnter(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		want    Decision
	}{
		{name: "no session", session: nil, want: RedirectLogin},
		{name: "empty token", session: &Session{Role: RoleAdmin, Status: StatusApproved}, want: RedirectLogin},
		{name: "admin pending", session: &Session{Token: "t", Role: RoleAdmin, Status: StatusPending}, want: Proceed},
		{name: "admin lower case", session: &Session{Token: "t", Role: "admin"}, want: Proceed},
		{name: "approved student", session: &Session{Token: "t", Role: RoleStudent, Status: StatusApproved}, want: Proceed},
		{name: "approved lower case", session: &Session{Token: "t", Role: "student", Status: "approved"}, want: Proceed},
		{name: "pending student", session: &Session{Token: "t", Role: RoleStudent, Status: StatusPending}, want: RedirectStatus},
		{name: "rejected student", session: &Session{Token: "t", Role: RoleStudent, Status: StatusRejected}, want: RedirectStatus},
		{name: "no role or status", session: &Session{Token: "t"}, want: RedirectStatus},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := MayEnter(test.session); got != test.want {
				t.Errorf("MayEnter() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestDecisionTarget(t *testing.T) {
	if Proceed.Target() != "" || RedirectLogin.Target() != "/login" || RedirectStatus.Target() != "/status" {
		t.Errorf("targets = %q %q %q", Proceed.Target(), RedirectLogin.Target(), RedirectStatus.Target())
	}
}

func TestGuardReadsStore(t *testing.T) {
	store := NewMemoryStore()
	if Guard(store) != RedirectLogin {
		t.Error("empty store should redirect to login")
	}
	store.Write(&Session{Token: "t", Status: StatusPending})
	if Guard(store) != RedirectStatus {
		t.Error("pending session should redirect to status")
	}
}

func TestGuardReadsContext(t *testing.T) {
	store := NewMemoryStore()
	holder := NewContext(store, nil)
	if Guard(holder) != RedirectLogin {
		t.Error("empty context should redirect to login")
	}
	if err := holder.SetSession(&Session{Token: "t", Status: StatusApproved}); err != nil {
		t.Fatal(err)
	}
	if Guard(holder) != Proceed {
		t.Error("approved session should proceed")
	}

	// The context answers from its cached value until reloaded.
	store.Clear()
	if Guard(holder) != Proceed {
		t.Error("context should keep its cached session until Reload")
	}
	holder.Reload()
	if Guard(holder) != RedirectLogin {
		t.Error("reloaded context should redirect to login")
	}
}
