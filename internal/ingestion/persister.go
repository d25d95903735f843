package ingestion

import (
	"context"
	"fmt"

	"casemail/internal/communication"
	"casemail/internal/emailconf"
	"casemail/internal/mailbox"
)

// Persister records an inbound email as an append-only communication on its
// errand. Attachment payloads are pulled from the mailbox and stored
// content-addressed in the blob store before the rows are written; any
// failure leaves the email in the mailbox for the next run.
type Persister struct {
	comms communication.Repository
	blobs communication.BlobStore
	mail  mailbox.Client
}

func NewPersister(comms communication.Repository, blobs communication.BlobStore, mail mailbox.Client) *Persister {
	return &Persister{
		comms: comms,
		blobs: blobs,
		mail:  mail,
	}
}

func (p *Persister) Persist(ctx context.Context, cfg *emailconf.TenantEmailConfig, email *mailbox.InboundEmail, errandNumber string) error {
	comm := &communication.Communication{
		Namespace:      cfg.Namespace,
		MunicipalityID: cfg.MunicipalityID,
		ErrandNumber:   errandNumber,
		Direction:      communication.DirectionInbound,
		Type:           communication.TypeEmail,
		Sender:         email.Sender,
		Target:         email.FirstRecipient(),
		Subject:        email.Subject,
		Body:           email.Message,
		Sent:           email.ReceivedAt,
		Headers:        email.Headers,
	}

	for _, att := range email.Attachments {
		data, err := p.mail.GetAttachment(ctx, cfg.MunicipalityID, email.ID, att.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch attachment %s: %w", att.ID, err)
		}
		key, err := p.blobs.Put(ctx, data)
		if err != nil {
			return fmt.Errorf("failed to store attachment %s: %w", att.ID, err)
		}
		comm.Attachments = append(comm.Attachments, communication.Attachment{
			Name:        att.Name,
			ContentType: att.ContentType,
			ForeignID:   att.ID,
			BlobKey:     key,
		})
	}

	return p.comms.Save(ctx, comm)
}
