package scrape

import (
	"log/slog"

	"github.com/abrsjh/harvest"
)

// Validate enforces the mandatory identity field and re-checks contact
// fields. A record missing its identity field is dropped; a field that
// fails validation is nulled out while the record survives. A non-empty
// country constrains international phone numbers to its calling code.
func Validate(records []harvest.Record, profile harvest.KindProfile, country string, logger *slog.Logger) []harvest.Record {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]harvest.Record, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.String(profile.IdentityField) == "" {
			logger.Warn("dropping record without identity field",
				slog.String("field", profile.IdentityField))
			continue
		}

		if email := rec.String("email"); email != "" && !harvest.ValidEmail(email) {
			logger.Warn("nulling invalid email", slog.String("email", email))
			rec["email"] = nil
		}
		if phone := rec.String("phone"); phone != "" && !harvest.ValidPhoneFor(phone, country) {
			logger.Warn("nulling invalid phone", slog.String("phone", phone))
			rec["phone"] = nil
		}
		if site := rec.String("website"); site != "" && !harvest.ValidURL(site) {
			logger.Warn("nulling invalid website", slog.String("website", site))
			rec["website"] = nil
		}

		out = append(out, rec)
	}
	return out
}
