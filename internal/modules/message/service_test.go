package message

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	messages map[string]*Message
}

func newMockRepository() *mockRepository {
	return &mockRepository{messages: make(map[string]*Message)}
}

func (m *mockRepository) Create(_ context.Context, msg *Message) error {
	m.messages[msg.ID.String()] = msg
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

func (m *mockRepository) List(_ context.Context, status string) ([]*Message, error) {
	var out []*Message
	for _, msg := range m.messages {
		if status == "" || string(msg.Status) == status {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id string, status MessageStatus) error {
	msg, ok := m.messages[id]
	if !ok {
		return ErrMessageNotFound
	}
	msg.Status = status
	return nil
}

func (m *mockRepository) SetReply(_ context.Context, id string, reply string) error {
	msg, ok := m.messages[id]
	if !ok {
		return ErrMessageNotFound
	}
	msg.Reply = reply
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.messages[id]; !ok {
		return ErrMessageNotFound
	}
	delete(m.messages, id)
	return nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func submitReq() SubmitMessageRequest {
	return SubmitMessageRequest{
		Name:    "Fatou Ndiaye",
		Email:   "fatou@example.com",
		Subject: "Question sur la livraison",
		Message: "Bonjour, livrez-vous à Thiès ?",
	}
}

func TestSubmitMessageStartsUnread(t *testing.T) {
	svc := NewService(newMockRepository(), &mockMailer{})

	m, err := svc.SubmitMessage(context.Background(), submitReq())

	require.NoError(t, err)
	assert.Equal(t, StatusUnread, m.Status)
}

func TestSubmitMessageValidatesEmail(t *testing.T) {
	svc := NewService(newMockRepository(), &mockMailer{})

	req := submitReq()
	req.Email = "nope"
	_, err := svc.SubmitMessage(context.Background(), req)
	assert.Error(t, err)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc := NewService(newMockRepository(), &mockMailer{})
	m, err := svc.SubmitMessage(context.Background(), submitReq())
	require.NoError(t, err)

	read, err := svc.MarkRead(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusRead, read.Status)

	again, err := svc.MarkRead(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusRead, again.Status)
}

func TestReplySendsMailAndMarksReplied(t *testing.T) {
	mailer := &mockMailer{}
	svc := NewService(newMockRepository(), mailer)
	m, err := svc.SubmitMessage(context.Background(), submitReq())
	require.NoError(t, err)

	replied, err := svc.Reply(context.Background(), m.ID.String(), "Oui, nous livrons à Thiès sous 48h.")

	require.NoError(t, err)
	assert.Equal(t, StatusReplied, replied.Status)
	assert.Equal(t, "Oui, nous livrons à Thiès sous 48h.", replied.Reply)
	assert.Equal(t, []string{"fatou@example.com"}, mailer.sent)
}

func TestReplyMailFailureLeavesMessageUntouched(t *testing.T) {
	repo := newMockRepository()
	mailer := &mockMailer{err: errors.New("provider down")}
	svc := NewService(repo, mailer)
	m, err := svc.SubmitMessage(context.Background(), submitReq())
	require.NoError(t, err)

	_, err = svc.Reply(context.Background(), m.ID.String(), "réponse")

	assert.Error(t, err)
	stored := repo.messages[m.ID.String()]
	assert.Equal(t, StatusUnread, stored.Status)
	assert.Equal(t, "", stored.Reply)
}

func TestReplyRejectsEmptyBody(t *testing.T) {
	svc := NewService(newMockRepository(), &mockMailer{})
	m, err := svc.SubmitMessage(context.Background(), submitReq())
	require.NoError(t, err)

	_, err = svc.Reply(context.Background(), m.ID.String(), "")
	assert.Error(t, err)
}
