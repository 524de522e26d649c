package changelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teampulse/pulsebot/internal/notify"
	"github.com/teampulse/pulsebot/internal/store"
)

// Announcer announces the newest release at most once. The announcement
// marker is claimed before the message is sent, so of two racing startups
// only the claim winner sends; a failed send after a successful claim
// leaves the version marked, trading "always deliver" for "never
// duplicate".
type Announcer struct {
	store     *store.Store
	notifier  notify.Dispatcher
	channelID string
	dir       string
	logger    *slog.Logger
}

// NewAnnouncer creates an Announcer reading definitions from dir and
// posting to channelID. An empty channelID disables announcements.
func NewAnnouncer(s *store.Store, n notify.Dispatcher, dir, channelID string, logger *slog.Logger) *Announcer {
	return &Announcer{store: s, notifier: n, channelID: channelID, dir: dir, logger: logger}
}

// AnnounceLatest discovers the highest available release definition and
// announces it if it is newer than everything already announced.
func (a *Announcer) AnnounceLatest(ctx context.Context) error {
	defs, problems := LoadDefinitions(a.dir)
	for _, p := range problems {
		a.logger.Warn("Skipping invalid release definition", "error", p.Error())
	}
	latest := Latest(defs)
	if latest == nil {
		a.logger.Info("No release definitions found", "dir", a.dir)
		return nil
	}

	if a.channelID == "" {
		a.logger.Info("No announcement channel configured, skipping release announcement",
			"version", latest.Version)
		return nil
	}

	announced, err := a.store.AnnouncedVersions(ctx)
	if err != nil {
		return err
	}
	if max := MaxVersion(announced); max != "" && Compare(latest.Version, max) <= 0 {
		a.logger.Info("Release already announced", "version", latest.Version, "latest_announced", max)
		return nil
	}

	changes, err := json.Marshal(latest.Changes)
	if err != nil {
		return fmt.Errorf("failed to marshal change lists: %w", err)
	}

	// Claim first. If the claim loses a race the other instance sends.
	if err := a.store.RecordAnnouncement(ctx, latest.Version, changes); err != nil {
		if errors.Is(err, store.ErrVersionAnnounced) {
			a.logger.Info("Announcement claim lost, skipping send", "version", latest.Version)
			return nil
		}
		return err
	}

	title := fmt.Sprintf("Release %s: %s", latest.Version, latest.Title)
	if err := a.notifier.PostChannel(ctx, a.channelID, title, RenderMessage(latest)); err != nil {
		// The version stays marked announced. Never duplicate beats
		// always deliver here.
		a.logger.Error("Release announcement send failed after claim",
			"version", latest.Version, "error", err.Error())
		return nil
	}

	a.logger.Info("Release announced", "version", latest.Version, "channel_id", a.channelID)
	return nil
}

// RenderMessage formats a definition into the announcement body.
func RenderMessage(def *Definition) string {
	var b strings.Builder

	if def.Description != "" {
		b.WriteString(def.Description)
	} else {
		b.WriteString("The bot was updated with the following changes:")
	}
	b.WriteString("\n")

	for _, category := range Categories {
		entries := def.Changes[category]
		if len(entries) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s:\n", categoryTitle(category)))
		for _, entry := range entries {
			b.WriteString(fmt.Sprintf("  - %s\n", entry))
		}
	}

	if def.Notes != "" {
		b.WriteString(fmt.Sprintf("\nNotes: %s\n", def.Notes))
	}
	if len(def.Contributors) > 0 {
		b.WriteString(fmt.Sprintf("\nContributors: %s\n", strings.Join(def.Contributors, ", ")))
	}
	b.WriteString(fmt.Sprintf("\nVersion %s | released %s", def.Version, def.ReleaseDate))
	return b.String()
}

func categoryTitle(category string) string {
	if category == "dev-notes" {
		return "Development"
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
