package mailparse

import (
	"io"
	"mime"
	"regexp"
	"strings"

	"github.com/patoliyabhi7/BlogEmails/internal/models"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// Parse converts a raw IMAP message into a models.Email. The From header
// is kept in two derived forms: the bare address (checked against the
// allow-list) and the decoded display form (what gets persisted as the
// sender). Both come from the same header, never from each other.
func Parse(msg *imap.Message) (*models.Email, error) {
	section := &imap.BodySectionName{}
	r := msg.GetBody(section)
	if r == nil {
		return nil, io.EOF
	}

	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, err
	}

	email := &models.Email{
		UID:        msg.SeqNum,
		ReceivedAt: msg.InternalDate,
		TraceID:    uuid.New().String(),
	}

	header := mr.Header

	// Extract From: bare address plus display form
	rawFrom := header.Get("From")
	decodedFrom, err := DecodeHeader(rawFrom)
	if err != nil {
		decodedFrom = rawFrom
	}
	email.FromDisplay = strings.TrimSpace(decodedFrom)

	if fromList, err := header.AddressList("From"); err == nil && len(fromList) > 0 {
		email.From = fromList[0].Address
	} else {
		email.From = extractEmailAddress(rawFrom)
	}

	// Decode Subject
	decodedSubject, err := DecodeHeader(header.Get("Subject"))
	if err != nil {
		return nil, err
	}
	email.Subject = decodedSubject

	// Extract body text/plain
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, err := h.ContentType()
			if err != nil {
				continue
			}
			if contentType == "text/plain" {
				body, err := io.ReadAll(p.Body)
				if err != nil {
					continue
				}
				email.BodyText = string(body)
			}
		}
	}

	return email, nil
}

// Simple regex to extract email address from "From" header, which may contain name and email
func extractEmailAddress(fromHeader string) string {
	re := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	return re.FindString(fromHeader)
}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func DecodeHeader(encoded string) (string, error) {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}
