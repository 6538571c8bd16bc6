package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dnnywang/shareable-split-saga/internal/calculator"
	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/pkg/api"
	"github.com/dnnywang/shareable-split-saga/pkg/currency"
)

// tripDocument is the on-disk form of a trip ledger.
type tripDocument struct {
	Participants []*api.Participant `json:"participants"`
	Purchases    []*api.Purchase    `json:"purchases"`
}

// ledger is a decoded trip document.
type ledger struct {
	participants []models.Participant
	purchases    []models.Purchase
}

// name returns the display name of a participant, or its id.
func (l *ledger) name(id string) string {
	if p, ok := models.FindParticipant(l.participants, id); ok && p.DisplayName != "" {
		return p.DisplayName
	}
	return id
}

// validate returns the first purchase that fails validation.
func (l *ledger) validate() error {
	for _, p := range l.purchases {
		if err := calculator.ValidatePurchase(p, l.participants); err != nil {
			return fmt.Errorf("purchase %s %q: %w", p.ID, p.Title, err)
		}
	}
	return nil
}

func decodeLedger(r io.Reader) (*ledger, error) {
	var doc tripDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode trip document: %w", err)
	}

	l := &ledger{}
	seen := make(map[string]bool, len(doc.Participants))
	for _, p := range doc.Participants {
		if p == nil || p.ID == "" {
			return nil, fmt.Errorf("participant without id")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate participant %q", p.ID)
		}
		seen[p.ID] = true
		l.participants = append(l.participants, models.Participant{ID: p.ID, DisplayName: p.DisplayName, Glyph: p.Glyph})
	}

	for i, p := range doc.Purchases {
		if p == nil {
			continue
		}
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		l.purchases = append(l.purchases, models.Purchase{
			ID:           id,
			Title:        p.Title,
			TotalAmount:  p.TotalAmount,
			PaidBy:       toShares(p.PaidBy),
			SplitBetween: toShares(p.SplitBetween),
			CreatedAt:    p.CreatedAt,
		})
	}
	return l, nil
}

func toShares(in []*api.Share) []models.Share {
	out := make([]models.Share, 0, len(in))
	for _, s := range in {
		if s != nil && !s.Amount.IsZero() {
			out = append(out, models.Share{ParticipantID: s.ParticipantID, Amount: s.Amount})
		}
	}
	return out
}

// ledgerFlags are shared by every subcommand.
type ledgerFlags struct {
	file     string
	currency string
	asJSON   bool

	// stdin and stdout default to the process streams.
	stdin  io.Reader
	stdout io.Writer
}

func (f *ledgerFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.file, "f", "-", "Trip document to read, - for stdin.")
	fs.StringVar(&f.currency, "c", currency.DefaultCode, "ISO 4217 currency used for display.")
	fs.BoolVar(&f.asJSON, "json", false, "Print JSON instead of text.")
}

func (f *ledgerFlags) out() io.Writer {
	if f.stdout != nil {
		return f.stdout
	}
	return os.Stdout
}

func (f *ledgerFlags) load() (*ledger, *currency.Formatter, error) {
	formatter, err := currency.NewFormatter(f.currency)
	if err != nil {
		return nil, nil, err
	}

	var r io.Reader
	switch {
	case f.file != "-" && f.file != "":
		file, err := os.Open(f.file)
		if err != nil {
			return nil, nil, err
		}
		defer file.Close()
		r = file
	case f.stdin != nil:
		r = f.stdin
	default:
		r = os.Stdin
	}

	l, err := decodeLedger(r)
	if err != nil {
		return nil, nil, err
	}
	return l, formatter, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
