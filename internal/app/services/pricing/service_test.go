package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainpricing "villetta/internal/domain/pricing"
	"villetta/internal/domain/property"
	"villetta/internal/infra/storage/memory"
)

type MockQuoteFetcher struct {
	mock.Mock
}

func (m *MockQuoteFetcher) FetchQuote(ctx context.Context, params domainpricing.QuoteParams) ([]byte, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func seededRepo(t *testing.T) *memory.PropertyRepository {
	t.Helper()
	repo := memory.NewPropertyRepository()
	require.NoError(t, repo.Save(context.Background(), &property.Property{
		ID:                 "casa-limoni",
		UpstreamCalendarID: "18427",
		UpstreamRoomTypeID: "741253098",
		MaxGuests:          6,
		Currency:           "EUR",
	}))
	return repo
}

const quoteResponse = `{
	"metadata": {"locale": "it"},
	"sections": {
		"checkout": {
			"quote": {
				"priceBreakdown": {
					"priceItems": [
						{"type": "ACCOMMODATION", "total": {"amountMicros": "300000000", "currency": "EUR"}},
						{"type": "CLEANING_FEE", "total": {"amountMicros": "50000000", "currency": "EUR"}}
					]
				}
			}
		}
	}
}`

func TestQuoteHappyPath(t *testing.T) {
	fetcher := new(MockQuoteFetcher)
	fetcher.On("FetchQuote", mock.Anything, mock.MatchedBy(func(p domainpricing.QuoteParams) bool {
		return p.RoomTypeID == "741253098" && p.Guests == 2
	})).Return([]byte(quoteResponse), nil).Once()

	svc := NewService(seededRepo(t), fetcher, nil)
	out, err := svc.Quote(context.Background(), "casa-limoni", "2026-07-01", "2026-07-04", 2)
	require.NoError(t, err)

	assert.Equal(t, int64(300), out.AccommodationTotal)
	assert.Equal(t, int64(100), out.AccommodationPerNight)
	assert.Equal(t, int64(50), out.CleaningFee)
	assert.Equal(t, int64(350), out.GrandTotal)
	assert.Equal(t, 3, out.Nights)
	assert.Equal(t, "EUR", out.Currency)
	assert.Len(t, out.Breakdown, 2)

	fetcher.AssertExpectations(t)
}

func TestQuoteValidationRejectsBeforeUpstream(t *testing.T) {
	fetcher := new(MockQuoteFetcher)
	svc := NewService(seededRepo(t), fetcher, nil)
	ctx := context.Background()

	_, err := svc.Quote(ctx, "casa-limoni", "", "2026-07-04", 2)
	assert.ErrorIs(t, err, ErrInvalidDates)

	_, err = svc.Quote(ctx, "casa-limoni", "2026-07-01", "", 2)
	assert.ErrorIs(t, err, ErrInvalidDates)

	_, err = svc.Quote(ctx, "casa-limoni", "not-a-date", "2026-07-04", 2)
	assert.ErrorIs(t, err, ErrInvalidDates)

	_, err = svc.Quote(ctx, "casa-limoni", "2026-07-04", "2026-07-04", 2)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Quote(ctx, "casa-limoni", "2026-07-01", "2026-07-04", 7)
	assert.ErrorIs(t, err, ErrGuestLimit)

	_, err = svc.Quote(ctx, "casa-limoni", "2026-07-01", "2026-07-04", 0)
	assert.ErrorIs(t, err, ErrGuestLimit)

	fetcher.AssertNumberOfCalls(t, "FetchQuote", 0)
}

func TestQuoteValidationIsDistinguishable(t *testing.T) {
	assert.True(t, IsValidation(ErrInvalidDates))
	assert.True(t, IsValidation(ErrInvalidRange))
	assert.True(t, IsValidation(ErrGuestLimit))
	assert.False(t, IsValidation(ErrNotAvailable))
}

func TestQuoteBreakdownMissingIsNotAvailable(t *testing.T) {
	fetcher := new(MockQuoteFetcher)
	fetcher.On("FetchQuote", mock.Anything, mock.Anything).
		Return([]byte(`{"sections": {"checkout": {}}}`), nil)

	svc := NewService(seededRepo(t), fetcher, nil)
	_, err := svc.Quote(context.Background(), "casa-limoni", "2026-07-01", "2026-07-04", 2)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestQuoteUpstreamFailureIsNotAvailable(t *testing.T) {
	fetcher := new(MockQuoteFetcher)
	fetcher.On("FetchQuote", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	svc := NewService(seededRepo(t), fetcher, nil)
	_, err := svc.Quote(context.Background(), "casa-limoni", "2026-07-01", "2026-07-04", 2)
	assert.ErrorIs(t, err, ErrNotAvailable)
	assert.False(t, IsValidation(err))
}

func TestQuoteUnknownProperty(t *testing.T) {
	fetcher := new(MockQuoteFetcher)
	svc := NewService(memory.NewPropertyRepository(), fetcher, nil)
	_, err := svc.Quote(context.Background(), "nope", "2026-07-01", "2026-07-04", 2)
	assert.ErrorIs(t, err, property.ErrNotFound)
	fetcher.AssertNumberOfCalls(t, "FetchQuote", 0)
}
