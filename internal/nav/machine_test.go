package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func signedInMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	mustFire(t, m, SubmitAuth{Phone: "5551234567"})
	mustFire(t, m, ConfirmCode{Code: "123456"})
	mustFire(t, m, LoadingDone{})
	require.Equal(t, Dashboard{}, m.Current())
	return m
}

func mustFire(t *testing.T, m *Machine, ev Event) Screen {
	t.Helper()
	s, err := m.Fire(ev)
	require.NoError(t, err, "event %T on %s", ev, m.Current().Kind())
	return s
}

func TestAuthFlow(t *testing.T) {
	m := NewMachine()
	require.Equal(t, Auth{}, m.Current())

	s := mustFire(t, m, SubmitAuth{Phone: "5551234567"})
	require.Equal(t, Verify{Phone: "5551234567"}, s)

	s = mustFire(t, m, Back{})
	require.Equal(t, Auth{}, s)

	mustFire(t, m, SubmitAuth{Phone: "5551234567"})
	_, err := m.Fire(ConfirmCode{Code: "12345"})
	require.ErrorIs(t, err, ErrCodeLength)
	require.Equal(t, KindVerify, m.Current().Kind())

	require.Equal(t, Loading{}, mustFire(t, m, ConfirmCode{Code: "123456"}))
	require.Equal(t, Dashboard{}, mustFire(t, m, LoadingDone{}))
}

func TestSubmitAuthRejectsBadPhone(t *testing.T) {
	for _, phone := range []string{"", "555123456", "55512345678", "(555)123456"} {
		m := NewMachine()
		_, err := m.Fire(SubmitAuth{Phone: phone})
		require.ErrorIs(t, err, ErrPhoneDigits, phone)
		require.Equal(t, Auth{}, m.Current())
	}
}

func TestAddItemAndBulkUpload(t *testing.T) {
	m := signedInMachine(t)
	require.Equal(t, AddItem{}, mustFire(t, m, RequestAddItem{}))
	require.Equal(t, BulkUpload{}, mustFire(t, m, RequestBulkUpload{}))
	require.Equal(t, Dashboard{}, mustFire(t, m, Save{}))

	mustFire(t, m, RequestAddItem{})
	require.Equal(t, Dashboard{}, mustFire(t, m, Back{}))

	mustFire(t, m, RequestAddItem{})
	mustFire(t, m, RequestBulkUpload{})
	require.Equal(t, Dashboard{}, mustFire(t, m, Back{}))
}

func TestItemDrillDownAndBack(t *testing.T) {
	m := signedInMachine(t)
	mustFire(t, m, Navigate{Target: KindLibrary})
	require.Equal(t, ItemDetail{ItemID: 7}, mustFire(t, m, ViewItem{ItemID: 7}))
	id, ok := m.SelectedItem()
	require.True(t, ok)
	require.Equal(t, int64(7), id)

	require.Equal(t, AssignToJob{ItemID: 7}, mustFire(t, m, RequestAssign{}))
	require.Equal(t, ItemDetail{ItemID: 7}, mustFire(t, m, Back{}))
	require.Equal(t, Reports{ItemID: 7}, mustFire(t, m, ViewReport{}))
	require.Equal(t, ItemDetail{ItemID: 7}, mustFire(t, m, Back{}))
	require.Equal(t, Library{}, mustFire(t, m, Back{}))
	require.Zero(t, m.Depth())
}

func TestRootNavigationClearsSelectedItem(t *testing.T) {
	m := signedInMachine(t)
	mustFire(t, m, ViewItem{ItemID: 3})
	mustFire(t, m, RequestAssign{})
	require.Equal(t, 2, m.Depth())

	require.Equal(t, Dashboard{}, mustFire(t, m, Navigate{Target: KindDashboard}))
	_, ok := m.SelectedItem()
	require.False(t, ok)
	require.Zero(t, m.Depth())
}

func TestViewItemWithoutIDIsRejected(t *testing.T) {
	m := signedInMachine(t)
	_, err := m.Fire(ViewItem{})
	require.ErrorIs(t, err, ErrNoItemSelected)
	require.Equal(t, Dashboard{}, m.Current())
}

func TestNavigateTargets(t *testing.T) {
	m := signedInMachine(t)
	require.Equal(t, Reports{}, mustFire(t, m, Navigate{Target: KindReports}))
	_, ok := m.SelectedItem()
	require.False(t, ok)
	require.Equal(t, Dashboard{}, mustFire(t, m, Back{}))

	_, err := m.Fire(Navigate{Target: KindItemDetail})
	require.ErrorIs(t, err, ErrInvalidTarget)

	pre := NewMachine()
	_, err = pre.Fire(Navigate{Target: KindDashboard})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionIsTotal(t *testing.T) {
	screens := []Screen{
		Auth{}, Verify{Phone: "5551234567"}, Loading{}, Dashboard{}, AddItem{},
		BulkUpload{}, Library{}, ItemDetail{ItemID: 1}, AssignToJob{ItemID: 1}, Reports{},
	}
	events := []Event{
		SubmitAuth{Phone: "5551234567"}, ConfirmCode{Code: "000000"}, Back{}, LoadingDone{},
		RequestAddItem{}, RequestBulkUpload{}, Save{}, ViewItem{ItemID: 1}, RequestAssign{},
		ViewReport{}, Navigate{Target: KindLibrary},
	}
	for _, s := range screens {
		for _, ev := range events {
			next, err := Transition(s, ev)
			require.NotNil(t, next)
			if err != nil {
				require.Equal(t, s, next, "%T on %s", ev, s.Kind())
			}
		}
	}
}

func TestUnhandledEventKeepsScreen(t *testing.T) {
	_, err := Transition(Loading{}, Back{})
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = Transition(Dashboard{}, RequestBulkUpload{})
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = Transition(Auth{}, Back{})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "itemDetail", KindItemDetail.String())
	require.Equal(t, "kind(42)", Kind(42).String())
}
