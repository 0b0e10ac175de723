// internal/services/chatwoot_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorunai/moto-backend/internal/models"
)

type fakeMessenger struct {
	configured bool

	sentConversation int
	sentContent      string
	sendErr          error

	assignedAgent int
	assignErr     error

	attrs map[string]any
}

func (f *fakeMessenger) Configured() bool { return f.configured }

func (f *fakeMessenger) SendMessage(ctx context.Context, conversationID int, content string, private bool) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentConversation = conversationID
	f.sentContent = content
	return nil
}

func (f *fakeMessenger) AssignConversation(ctx context.Context, conversationID, agentID int) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assignedAgent = agentID
	return nil
}

func (f *fakeMessenger) SetCustomAttributes(ctx context.Context, conversationID int, attrs map[string]any) error {
	f.attrs = attrs
	return nil
}

// fakeMotoRepo serves a single moto for the interest flow.
type fakeMotoRepo struct {
	moto *models.Moto
	err  error
}

func (f *fakeMotoRepo) List(ctx context.Context, opts models.ListMotosOptions) ([]models.Moto, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return []models.Moto{*f.moto}, 1, nil
}

func (f *fakeMotoRepo) GetByID(ctx context.Context, id int) (*models.Moto, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.moto, nil
}

func (f *fakeMotoRepo) Search(ctx context.Context, query string) ([]models.Moto, error) {
	return []models.Moto{*f.moto}, f.err
}

func (f *fakeMotoRepo) Create(ctx context.Context, fields map[string]any) (*models.Moto, error) {
	return f.moto, f.err
}

func (f *fakeMotoRepo) Update(ctx context.Context, id int, fields map[string]any) (*models.Moto, error) {
	return f.moto, f.err
}

func (f *fakeMotoRepo) SetStatus(ctx context.Context, id int, status models.MotoStatus) error {
	return f.err
}

func (f *fakeMotoRepo) Delete(ctx context.Context, id int) error { return f.err }

func (f *fakeMotoRepo) BaseURL() string { return "http://nocodb.local" }

func testMoto(t *testing.T) *models.Moto {
	t.Helper()
	var m models.Moto
	err := json.Unmarshal([]byte(`{
		"Id": 7,
		"Productos_motos": "SPORT 100",
		"Marca": "TVS",
		"Precio_comercial": 5900000,
		"vueltas_transito_de_contado": 290000,
		"vueltas_transito_con_prenda": 390000
	}`), &m)
	require.NoError(t, err)
	return &m
}

func TestSendInterestDeliversMessage(t *testing.T) {
	messenger := &fakeMessenger{configured: true}
	motos := NewMotoService(&fakeMotoRepo{moto: testMoto(t)})
	service := NewChatwootService(messenger, motos, map[int]int{1: 6})

	err := service.SendInterest(context.Background(), &InterestRequest{
		ConversationID: 42,
		MotoID:         7,
		AdvisorID:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, messenger.sentConversation)
	assert.Contains(t, messenger.sentContent, "SPORT 100")
	assert.Contains(t, messenger.sentContent, "Me interesa")
	assert.Contains(t, messenger.sentContent, "$ 5.900.000")
	assert.Equal(t, 6, messenger.assignedAgent)
	assert.Equal(t, "SPORT 100", messenger.attrs["moto_modelo"])
}

func TestSendInterestAssignmentFailureIsNotFatal(t *testing.T) {
	// Losing the assignment must never lose the lead.
	messenger := &fakeMessenger{configured: true, assignErr: errors.New("agent offline")}
	motos := NewMotoService(&fakeMotoRepo{moto: testMoto(t)})
	service := NewChatwootService(messenger, motos, map[int]int{1: 6})

	err := service.SendInterest(context.Background(), &InterestRequest{
		ConversationID: 42,
		MotoID:         7,
		AdvisorID:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, messenger.sentConversation)
}

func TestSendInterestUnmappedAdvisorSkipsAssignment(t *testing.T) {
	messenger := &fakeMessenger{configured: true}
	motos := NewMotoService(&fakeMotoRepo{moto: testMoto(t)})
	service := NewChatwootService(messenger, motos, map[int]int{})

	err := service.SendInterest(context.Background(), &InterestRequest{
		ConversationID: 42,
		MotoID:         7,
		AdvisorID:      99,
	})
	require.NoError(t, err)
	assert.Zero(t, messenger.assignedAgent)
}

func TestSendInterestNotConfigured(t *testing.T) {
	messenger := &fakeMessenger{configured: false}
	motos := NewMotoService(&fakeMotoRepo{moto: testMoto(t)})
	service := NewChatwootService(messenger, motos, nil)

	err := service.SendInterest(context.Background(), &InterestRequest{
		ConversationID: 42,
		MotoID:         7,
	})
	assert.ErrorIs(t, err, ErrChatwootNotConfigured)
}

func TestSendInterestSendFailure(t *testing.T) {
	messenger := &fakeMessenger{configured: true, sendErr: errors.New("chatwoot 500")}
	motos := NewMotoService(&fakeMotoRepo{moto: testMoto(t)})
	service := NewChatwootService(messenger, motos, nil)

	err := service.SendInterest(context.Background(), &InterestRequest{
		ConversationID: 42,
		MotoID:         7,
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrChatwootNotConfigured)
}
