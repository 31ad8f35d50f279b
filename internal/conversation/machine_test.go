package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type fakeCreator struct {
	created []*domain.Listing
	id      string
	err     error
}

func (f *fakeCreator) Create(_ context.Context, listing *domain.Listing) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, listing)
	return f.id, nil
}

type trackedEvent struct {
	userID  int64
	action  string
	payload map[string]any
}

type fakeTracker struct {
	events []trackedEvent
}

func (f *fakeTracker) Track(_ context.Context, userID int64, action string, payload map[string]any) {
	f.events = append(f.events, trackedEvent{userID: userID, action: action, payload: payload})
}

func newTestMachine(creator *fakeCreator, tracker *fakeTracker) *Machine {
	return NewMachine(creator, tracker, zap.NewNop())
}

const validDescription = "Barely used, comes with the charger and the original box included."

func TestMachineHappyPath(t *testing.T) {
	creator := &fakeCreator{id: "abc123"}
	tracker := &fakeTracker{}
	m := newTestMachine(creator, tracker)

	s := &Session{UserID: 42}
	ctx := context.Background()

	res := m.Start(s)
	assert.Equal(t, StateCategory, s.State)
	require.Len(t, res.Replies, 1)
	assert.NotEmpty(t, res.Replies[0].Keyboard)

	res = m.Handle(ctx, s, Input{Text: CategoryLabel(domain.CategoryDigital), Category: domain.CategoryDigital})
	assert.Equal(t, StateTitle, s.State)
	assert.True(t, res.Replies[0].RemoveKeyboard)

	m.Handle(ctx, s, Input{Text: "Used laptop for sale cheap"})
	assert.Equal(t, StateDescription, s.State)

	m.Handle(ctx, s, Input{Text: validDescription})
	assert.Equal(t, StatePrice, s.State)

	m.Handle(ctx, s, Input{Text: "1500000"})
	assert.Equal(t, StateContact, s.State)

	m.Handle(ctx, s, Input{Text: "09123456789"})
	assert.Equal(t, StateLocation, s.State)
	require.NotNil(t, s.Draft.Photos)
	assert.Empty(t, s.Draft.Photos)

	m.Handle(ctx, s, Input{Text: "خواف - خیابان امام رضا"})
	assert.Equal(t, StatePhoto, s.State)

	res = m.Handle(ctx, s, Input{Intent: IntentSkipPhotos})
	assert.Equal(t, StateConfirm, s.State)
	assert.False(t, res.Done)
	assert.Contains(t, res.Replies[0].Text, "Used laptop for sale cheap")
	assert.Contains(t, res.Replies[0].Text, "1,500,000 تومان")

	res = m.Handle(ctx, s, Input{Text: LabelSubmit, Intent: IntentSubmit})
	assert.True(t, res.Done)
	assert.Equal(t, "abc123", res.ListingID)
	assert.Equal(t, StateIdle, s.State)
	assert.Nil(t, s.Draft)

	require.Len(t, creator.created, 1)
	got := creator.created[0]
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, domain.CategoryDigital, got.Category)
	assert.Equal(t, "Used laptop for sale cheap", got.Title)
	assert.Equal(t, int64(1500000), got.Price)
	assert.Equal(t, "09123456789", got.Contact)
	assert.Empty(t, got.Photos)

	require.Len(t, tracker.events, 1)
	assert.Equal(t, "create_listing", tracker.events[0].action)
	assert.Equal(t, "abc123", tracker.events[0].payload["listing_id"])
}

func TestMachineRepromptsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		state State
		input Input
	}{
		{"short title", StateTitle, Input{Text: "کوتاه"}},
		{"short description", StateDescription, Input{Text: "خیلی کوتاه"}},
		{"non numeric price", StatePrice, Input{Text: "گران"}},
		{"negative price", StatePrice, Input{Text: "-5"}},
		{"bad phone", StateContact, Input{Text: "12345"}},
		{"empty location", StateLocation, Input{Text: "   "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMachine(&fakeCreator{}, &fakeTracker{})
			s := &Session{UserID: 1, State: tc.state, Draft: &Draft{Category: domain.CategoryDigital}}

			res := m.Handle(context.Background(), s, tc.input)

			assert.Equal(t, tc.state, s.State, "state must not advance")
			assert.False(t, res.Done)
			require.Len(t, res.Replies, 1)
			assert.NotEmpty(t, res.Replies[0].Text)
			assert.Nil(t, s.Draft.Title)
			assert.Nil(t, s.Draft.Price)
		})
	}
}

func TestMachineAcceptsRetryAfterReprompt(t *testing.T) {
	m := newTestMachine(&fakeCreator{}, &fakeTracker{})
	s := &Session{UserID: 1}
	ctx := context.Background()

	m.Start(s)
	m.Handle(ctx, s, Input{Category: domain.CategoryDigital})

	m.Handle(ctx, s, Input{Text: "short"})
	require.Equal(t, StateTitle, s.State)
	require.Nil(t, s.Draft.Title)

	m.Handle(ctx, s, Input{Text: "Twelve chars"})
	assert.Equal(t, StateDescription, s.State)
	require.NotNil(t, s.Draft.Title)
	assert.Equal(t, "Twelve chars", *s.Draft.Title)
}

func TestMachinePhotoCapForcesConfirmation(t *testing.T) {
	m := newTestMachine(&fakeCreator{id: "x"}, &fakeTracker{})
	s := &Session{UserID: 7}
	ctx := context.Background()

	m.Start(s)
	m.Handle(ctx, s, Input{Category: domain.CategoryVehicles})
	m.Handle(ctx, s, Input{Text: "پراید مدل ۹۰ در حد نو"})
	m.Handle(ctx, s, Input{Text: validDescription})
	m.Handle(ctx, s, Input{Text: "0"})
	m.Handle(ctx, s, Input{Text: "09351112233"})
	m.Handle(ctx, s, Input{Text: "خواف"})
	require.Equal(t, StatePhoto, s.State)

	for i := 0; i < 10; i++ {
		res := m.Handle(ctx, s, Input{Kind: InputPhoto, PhotoRef: fmt.Sprintf("file-%d", i)})
		require.Equal(t, StatePhoto, s.State)
		assert.Contains(t, res.Replies[0].Text, fmt.Sprintf("عکس %d از 10", i+1))
	}
	require.Len(t, s.Draft.Photos, 10)

	res := m.Handle(ctx, s, Input{Kind: InputPhoto, PhotoRef: "file-extra"})
	assert.Equal(t, StateConfirm, s.State)
	assert.Len(t, s.Draft.Photos, 10, "attachment past the cap is dropped")
	require.Len(t, res.Replies, 2)
	assert.Contains(t, res.Replies[0].Text, "حداکثر")
	assert.Contains(t, res.Replies[1].Text, "پیش‌نمایش")
}

func TestMachineCancelFromEveryState(t *testing.T) {
	states := []State{
		StateCategory, StateTitle, StateDescription, StatePrice,
		StateContact, StateLocation, StatePhoto, StateConfirm,
	}

	for _, state := range states {
		t.Run(state.String(), func(t *testing.T) {
			creator := &fakeCreator{}
			m := newTestMachine(creator, &fakeTracker{})
			s := &Session{UserID: 3, State: state, Draft: &Draft{}}

			res := m.Handle(context.Background(), s, Input{Text: CommandCancel, Intent: IntentCancel})

			assert.True(t, res.Done)
			assert.Equal(t, StateIdle, s.State)
			assert.Nil(t, s.Draft)
			assert.Empty(t, creator.created)
			require.Len(t, res.Replies, 1)
			assert.Equal(t, "عملیات لغو شد.", res.Replies[0].Text)
			assert.True(t, res.Replies[0].RemoveKeyboard)
		})
	}
}

func TestMachineConfirmRefusesIncompleteDraft(t *testing.T) {
	creator := &fakeCreator{id: "never"}
	m := newTestMachine(creator, &fakeTracker{})

	title := "Used laptop for sale cheap"
	s := &Session{UserID: 9, State: StateConfirm, Draft: &Draft{
		Category: domain.CategoryDigital,
		Title:    &title,
	}}

	res := m.Handle(context.Background(), s, Input{Intent: IntentSubmit})

	assert.True(t, res.Done)
	assert.Empty(t, creator.created, "incomplete draft must never be committed")
	assert.Equal(t, StateIdle, s.State)
}

func TestMachineCreateFailureEndsFlow(t *testing.T) {
	creator := &fakeCreator{err: errors.New("mongo down")}
	tracker := &fakeTracker{}
	m := newTestMachine(creator, tracker)
	s := &Session{UserID: 5}
	ctx := context.Background()

	m.Start(s)
	m.Handle(ctx, s, Input{Category: domain.CategoryClothing})
	m.Handle(ctx, s, Input{Text: "کاپشن زمستانی سایز لارج"})
	m.Handle(ctx, s, Input{Text: validDescription})
	m.Handle(ctx, s, Input{Text: "250000"})
	m.Handle(ctx, s, Input{Text: "+989123456789"})
	m.Handle(ctx, s, Input{Text: "خواف، مرکز شهر"})
	m.Handle(ctx, s, Input{Intent: IntentFinishPhotos})

	res := m.Handle(ctx, s, Input{Intent: IntentSubmit})

	assert.True(t, res.Done)
	assert.Empty(t, res.ListingID)
	assert.Contains(t, res.Replies[0].Text, "مشکلی در ثبت آگهی")
	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, tracker.events, "failed commit must not be tracked")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "توافقی", FormatPrice(0))
	assert.Equal(t, "900 تومان", FormatPrice(900))
	assert.Equal(t, "1,500,000 تومان", FormatPrice(1500000))
	assert.Equal(t, "12,000 تومان", FormatPrice(12000))
}
