package viewstate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pennywise/internal/month"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction/store"
	"github.com/MrJamesThe3rd/pennywise/internal/viewstate"
)

var today = time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return today }

func newMachine(t *testing.T) (*viewstate.Machine, *transaction.Service) {
	t.Helper()

	svc := transaction.NewService(store.NewMemory())
	m := viewstate.New(svc, viewstate.WithClock(clock), viewstate.WithIDs(func() string { return "fixed-id" }))

	return m, svc
}

func TestNew_InitialState(t *testing.T) {
	m, _ := newMachine(t)

	assert.Equal(t, viewstate.State{
		View:  viewstate.ViewHome,
		Month: "2024-03",
		Draft: transaction.Draft{Type: transaction.TypeExpense, Date: "2024-03-09"},
	}, m.State())
}

func TestMachine_Navigate(t *testing.T) {
	m, _ := newMachine(t)
	ctx := context.Background()

	for _, v := range []viewstate.View{viewstate.ViewReports, viewstate.ViewAdd, viewstate.ViewTransactions, viewstate.ViewHome} {
		require.NoError(t, m.NavigateTo(ctx, v))
		assert.Equal(t, v, m.State().View)
	}
}

func TestMachine_ChangeMonth(t *testing.T) {
	type testCase struct {
		name  string
		start month.Key
		delta int
		want  month.Key
	}

	tests := []testCase{
		{name: "PreviousYear", start: "2024-01", delta: -1, want: "2023-12"},
		{name: "NextYear", start: "2024-12", delta: 1, want: "2025-01"},
		{name: "Forward", start: "2024-03", delta: 1, want: "2024-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newMachine(t)
			ctx := context.Background()

			require.NoError(t, m.Dispatch(ctx, viewstate.SetMonth{Month: tt.start}))
			require.NoError(t, m.ChangeMonth(ctx, tt.delta))

			assert.Equal(t, tt.want, m.State().Month)
		})
	}
}

func TestMachine_SetFormTypeClearsCategory(t *testing.T) {
	m, _ := newMachine(t)
	ctx := context.Background()

	require.NoError(t, m.SelectCategory(ctx, "food"))
	assert.Equal(t, "food", m.State().Draft.Category)

	require.NoError(t, m.SetFormType(ctx, transaction.TypeIncome))

	draft := m.State().Draft
	assert.Equal(t, transaction.TypeIncome, draft.Type)
	assert.Empty(t, draft.Category)
}

func TestMachine_SelectCategoryIsUnvalidated(t *testing.T) {
	m, _ := newMachine(t)

	require.NoError(t, m.SelectCategory(context.Background(), "salary"))
	assert.Equal(t, "salary", m.State().Draft.Category)
}

func TestMachine_Save(t *testing.T) {
	type testCase struct {
		name     string
		actions  []viewstate.Action
		wantErr  error
		wantSize int
	}

	tests := []testCase{
		{
			name: "ZeroAmount",
			actions: []viewstate.Action{
				viewstate.SetAmount{Text: "0"},
				viewstate.SelectCategory{ID: "food"},
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "GarbageAmount",
			actions: []viewstate.Action{
				viewstate.SetAmount{Text: "twelve"},
				viewstate.SelectCategory{ID: "food"},
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "MissingCategory",
			actions: []viewstate.Action{
				viewstate.SetAmount{Text: "10"},
			},
			wantErr: transaction.ErrMissingCategory,
		},
		{
			name: "MissingDate",
			actions: []viewstate.Action{
				viewstate.SetAmount{Text: "10"},
				viewstate.SelectCategory{ID: "food"},
				viewstate.SetDate{Date: ""},
			},
			wantErr: transaction.ErrMissingDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := newMachine(t)
			ctx := context.Background()

			require.NoError(t, m.NavigateTo(ctx, viewstate.ViewAdd))

			for _, a := range tt.actions {
				require.NoError(t, m.Dispatch(ctx, a))
			}

			before := m.State()

			err := m.SaveTransaction(ctx)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, m.State())
			assert.Equal(t, viewstate.ViewAdd, m.State().View)
			assert.Empty(t, svc.All())
		})
	}
}

func TestMachine_SaveSuccess(t *testing.T) {
	m, svc := newMachine(t)
	ctx := context.Background()

	require.NoError(t, m.NavigateTo(ctx, viewstate.ViewAdd))
	require.NoError(t, m.Dispatch(ctx, viewstate.SetAmount{Text: "42.50"}))
	require.NoError(t, m.SelectCategory(ctx, "food"))
	require.NoError(t, m.Dispatch(ctx, viewstate.SetDescription{Text: "  groceries "}))
	require.NoError(t, m.Dispatch(ctx, viewstate.SetDate{Date: "2024-03-01"}))

	require.NoError(t, m.SaveTransaction(ctx))

	all := svc.All()
	require.Len(t, all, 1)
	assert.Equal(t, "fixed-id", all[0].ID)
	assert.Equal(t, transaction.TypeExpense, all[0].Type)
	assert.Equal(t, "42.5", all[0].Amount.String())
	assert.Equal(t, "food", all[0].Category)
	assert.Equal(t, "groceries", all[0].Description)
	assert.Equal(t, "2024-03-01", all[0].Date)

	state := m.State()
	assert.Equal(t, viewstate.ViewHome, state.View)
	assert.Equal(t, transaction.NewDraft("2024-03-09"), state.Draft)
}

func TestMachine_SaveStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := viewstate.NewMockStore(ctrl)
	st.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	m := viewstate.New(st, viewstate.WithClock(clock))
	ctx := context.Background()

	require.NoError(t, m.NavigateTo(ctx, viewstate.ViewAdd))
	require.NoError(t, m.Dispatch(ctx, viewstate.SetAmount{Text: "5"}))
	require.NoError(t, m.SelectCategory(ctx, "bills"))

	err := m.SaveTransaction(ctx)
	assert.Error(t, err)
	assert.Equal(t, viewstate.ViewAdd, m.State().View)
	assert.Equal(t, "5", m.State().Draft.Amount)
}

func TestMachine_Delete(t *testing.T) {
	type testCase struct {
		name      string
		confirm   viewstate.Confirmer
		setupMock func(m *viewstate.MockStore)
	}

	tests := []testCase{
		{
			name:    "Confirmed",
			confirm: viewstate.Answer(true),
			setupMock: func(m *viewstate.MockStore) {
				m.EXPECT().RemoveByID(gomock.Any(), "abc").Return(nil)
			},
		},
		{
			name:      "Declined",
			confirm:   viewstate.Answer(false),
			setupMock: func(*viewstate.MockStore) {},
		},
		{
			name:      "NoConfirmer",
			confirm:   nil,
			setupMock: func(*viewstate.MockStore) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := viewstate.NewMockStore(ctrl)
			tt.setupMock(st)

			m := viewstate.New(st, viewstate.WithClock(clock))
			assert.NoError(t, m.DeleteTransaction(context.Background(), "abc", tt.confirm))
		})
	}
}

func TestMachine_DeleteAsksWithPrompt(t *testing.T) {
	m, svc := newMachine(t)
	ctx := context.Background()

	require.NoError(t, m.Dispatch(ctx, viewstate.SetAmount{Text: "1"}))
	require.NoError(t, m.SelectCategory(ctx, "food"))
	require.NoError(t, m.SaveTransaction(ctx))

	var asked string

	err := m.DeleteTransaction(ctx, "fixed-id", viewstate.ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return true
	}))
	require.NoError(t, err)

	assert.Equal(t, viewstate.DeletePrompt, asked)
	assert.Empty(t, svc.All())
}

func TestMachine_Subscribe(t *testing.T) {
	m, _ := newMachine(t)
	ctx := context.Background()

	var seen []viewstate.View
	m.Subscribe(func(s viewstate.State) { seen = append(seen, s.View) })

	require.NoError(t, m.NavigateTo(ctx, viewstate.ViewReports))
	require.Error(t, m.SaveTransaction(ctx))
	require.NoError(t, m.DeleteTransaction(ctx, "x", viewstate.Answer(false)))

	assert.Equal(t, []viewstate.View{viewstate.ViewReports}, seen)
}

func TestParseView(t *testing.T) {
	v, ok := viewstate.ParseView("reports")
	assert.True(t, ok)
	assert.Equal(t, viewstate.ViewReports, v)

	_, ok = viewstate.ParseView("settings")
	assert.False(t, ok)
}
