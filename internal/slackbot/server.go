// Package slackbot exposes the Slack-facing HTTP surface: slash
// commands, the Events API endpoint, and health/status probes.
package slackbot

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"github.com/nest-agency/pitch-cli/internal/model"
)

const (
	responseEphemeral = "ephemeral"
	responseInChannel = "in_channel"
)

const helpText = "🤖 **Nest Pitch Plan Automation**\n" +
	"**Available Commands:**\n" +
	"- `/start-pitch ClientName` - Generate complete pitch plan\n" +
	"- `/pitch-help` - Show this help message\n\n" +
	"**How it works:**\n" +
	"1. I extract client data from Notion\n" +
	"2. I generate strategic analysis using AI\n" +
	"3. I create compelling narrative\n" +
	"4. I produce final formatted Google Doc\n" +
	"5. I share with the team automatically\n\n" +
	"**What I need:**\n" +
	"- Client must exist in Notion database\n" +
	"- Takes 5-10 minutes to complete\n" +
	"- Results shared automatically with sales team"

// JobStarter launches background jobs and reports how many are in
// flight.
type JobStarter interface {
	Start(j model.Job)
	Active() int64
}

// Bot handles Slack webhook traffic and hands pitch requests to the
// job runner.
type Bot struct {
	signingSecret string
	runner        JobStarter
}

// New creates a Bot. The signing secret authenticates every Slack
// request; the runner receives one job per /start-pitch command.
func New(signingSecret string, runner JobStarter) *Bot {
	return &Bot{signingSecret: signingSecret, runner: runner}
}

// Router builds the HTTP surface. Slack posts commands and events;
// the GET endpoints serve probes and dashboards.
func (b *Bot) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/slack/commands", b.handleCommand)
	r.Post("/slack/events", b.handleEvent)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/healthz", b.handleHealth)
		r.Get("/status", b.handleStatus)
	})

	return r
}

// handleCommand verifies and dispatches one slash command. The JSON
// body written here is the synchronous ack Slack shows the user; it
// must go out within Slack's 3-second window, so no pipeline work
// happens on this path.
func (b *Bot) handleCommand(w http.ResponseWriter, r *http.Request) {
	verifier, err := slack.NewSecretsVerifier(r.Header, b.signingSecret)
	if err != nil {
		zap.L().Warn("slackbot: reject command", zap.Error(err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	r.Body = io.NopCloser(io.TeeReader(r.Body, &verifier))

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		zap.L().Warn("slackbot: parse slash command", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := verifier.Ensure(); err != nil {
		zap.L().Warn("slackbot: signature mismatch")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch cmd.Command {
	case "/start-pitch":
		b.startPitch(w, cmd)
	case "/pitch-help":
		respond(w, responseEphemeral, helpText)
	default:
		respond(w, responseEphemeral, fmt.Sprintf("❌ Unknown command: %s", cmd.Command))
	}
}

func (b *Bot) startPitch(w http.ResponseWriter, cmd slack.SlashCommand) {
	clientName := strings.TrimSpace(cmd.Text)
	if clientName == "" {
		respond(w, responseEphemeral, "❌ Please specify a client name: `/start-pitch ClientName`")
		return
	}

	j := model.NewJob(clientName, cmd.ChannelID, cmd.UserID)
	zap.L().Info("slackbot: starting pitch job",
		zap.String("job_id", j.ID),
		zap.String("client", clientName),
		zap.String("channel", cmd.ChannelID),
		zap.String("user", cmd.UserID),
	)

	respond(w, responseInChannel, fmt.Sprintf(
		"🚀 Starting pitch plan for **%s**...\n⏱️ This will take 5-10 minutes. I'll update you as I progress.",
		clientName,
	))
	b.runner.Start(j)
}

// handleEvent serves the Events API endpoint. Only the one-time
// url_verification handshake gets a real response; all other events
// are acknowledged and dropped, since commands arrive via
// /slack/commands.
func (b *Bot) handleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	verifier, err := slack.NewSecretsVerifier(r.Header, b.signingSecret)
	if err != nil {
		zap.L().Warn("slackbot: reject event", zap.Error(err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := verifier.Ensure(); err != nil {
		zap.L().Warn("slackbot: event signature mismatch")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		zap.L().Warn("slackbot: parse event", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if event.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(challenge.Challenge)); err != nil {
			zap.L().Warn("slackbot: write challenge", zap.Error(err))
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (b *Bot) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy", "service": "pitch-cli"})
}

func (b *Bot) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]int64{"active_jobs": b.runner.Active()})
}

// commandResponse is the immediate JSON reply to a slash command.
type commandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

func respond(w http.ResponseWriter, responseType, text string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(commandResponse{ResponseType: responseType, Text: text}); err != nil {
		zap.L().Warn("slackbot: write command response", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("slackbot: write response", zap.Error(err))
	}
}
