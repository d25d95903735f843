package ingestion

import (
	"context"
	"fmt"
	"io"

	"casemail/internal/communication"
	"casemail/internal/emailconf"
	"casemail/internal/errand"
	"casemail/internal/mailbox"
	"casemail/internal/messaging"
	pkgerrors "casemail/pkg/errors"
	"casemail/pkg/models"
)

type fakeErrandRepo struct {
	errands    map[string]*errand.Errand
	created    []*errand.Errand
	updates    map[string]string
	findErr    error
	createErr  error
	updateErr  error
	nextNumber int
}

func newFakeErrandRepo() *fakeErrandRepo {
	return &fakeErrandRepo{
		errands: make(map[string]*errand.Errand),
		updates: make(map[string]string),
	}
}

func (r *fakeErrandRepo) FindByNumber(ctx context.Context, namespace, municipalityID, errandNumber string) (*errand.Errand, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if e, ok := r.errands[errandNumber]; ok {
		return e, nil
	}
	return nil, pkgerrors.ErrNotFound
}

func (r *fakeErrandRepo) Create(ctx context.Context, e *errand.Errand) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextNumber++
	e.ID = fmt.Sprintf("id-%d", r.nextNumber)
	if e.ErrandNumber == "" {
		e.ErrandNumber = fmt.Sprintf("%s-2026-%06d", e.Namespace, r.nextNumber)
	}
	r.errands[e.ErrandNumber] = e
	r.created = append(r.created, e)
	return nil
}

func (r *fakeErrandRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates[id] = status
	return nil
}

type fakeMailbox struct {
	emails      map[string][]mailbox.InboundEmail
	attachments map[string][]byte
	deleted     []string
	listErr     error
	listErrFor  map[string]error
	deleteErr   error
	getAttErr   error
}

func newFakeMailbox() *fakeMailbox {
	return &fakeMailbox{
		emails:      make(map[string][]mailbox.InboundEmail),
		attachments: make(map[string][]byte),
		listErrFor:  make(map[string]error),
	}
}

func (m *fakeMailbox) tenantKey(namespace, municipalityID string) string {
	return namespace + "/" + municipalityID
}

func (m *fakeMailbox) ListEmails(ctx context.Context, namespace, municipalityID string) ([]mailbox.InboundEmail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if err := m.listErrFor[m.tenantKey(namespace, municipalityID)]; err != nil {
		return nil, err
	}
	return m.emails[m.tenantKey(namespace, municipalityID)], nil
}

func (m *fakeMailbox) DeleteEmail(ctx context.Context, municipalityID, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *fakeMailbox) GetAttachment(ctx context.Context, municipalityID, emailID, attachmentID string) ([]byte, error) {
	if m.getAttErr != nil {
		return nil, m.getAttErr
	}
	return m.attachments[attachmentID], nil
}

type fakeMessaging struct {
	sent    []messaging.EmailRequest
	sendErr error
}

func (f *fakeMessaging) SendEmail(ctx context.Context, req messaging.EmailRequest) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, req)
	return nil
}

type fakeConfigService struct {
	emailconf.Service
	configs []emailconf.TenantEmailConfig
	listErr error
}

func (f *fakeConfigService) ListEnabled(ctx context.Context) ([]emailconf.TenantEmailConfig, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.configs, nil
}

type fakeCommRepo struct {
	saved   []*communication.Communication
	saveErr error
}

func (f *fakeCommRepo) Save(ctx context.Context, comm *communication.Communication) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, comm)
	return nil
}

func (f *fakeCommRepo) ListByErrand(ctx context.Context, namespace, municipalityID, errandNumber string) ([]communication.Communication, error) {
	return nil, nil
}

func (f *fakeCommRepo) GetAttachment(ctx context.Context, attachmentID string) (*communication.Attachment, error) {
	return nil, pkgerrors.ErrNotFound
}

type fakeBlobStore struct {
	blobs  map[string][]byte
	putErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(ctx context.Context, data []byte) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	key := fmt.Sprintf("blob-%d", len(f.blobs)+1)
	f.blobs[key] = data
	return key, nil
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, pkgerrors.ErrNotFound
}

type fakeProducer struct {
	events     []models.Event
	publishErr error
}

func (f *fakeProducer) Publish(ctx context.Context, topic string, event models.Event) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func (f *fakeProducer) eventsOfType(eventType string) []models.Event {
	var out []models.Event
	for _, e := range f.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
