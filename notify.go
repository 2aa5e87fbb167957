package main

import (
	"fmt"
	"log"
	"sync"

	"github.com/slack-go/slack"
)

// Notifier posts operational events to a Slack channel. With no token
// configured every method is a silent no-op, so callers never branch on it.
type Notifier struct {
	api     *slack.Client
	channel string

	mu           sync.Mutex
	lastDegraded bool
}

func NewNotifier(cfg Config) *Notifier {
	if cfg.SlackBotToken == "" {
		log.Println("slack notifications disabled (slack_bot_token not set)")
		return &Notifier{}
	}
	return &Notifier{
		api:     slack.New(cfg.SlackBotToken),
		channel: cfg.SlackChannelID,
	}
}

func (n *Notifier) post(msg string) {
	if n.api == nil || n.channel == "" {
		return
	}
	if _, _, err := n.api.PostMessage(n.channel, slack.MsgOptionText(msg, false)); err != nil {
		log.Printf("slack post error: %v", err)
	}
}

// PostEvalSummary posts the outcome of a scheduled evaluation run.
func (n *Notifier) PostEvalSummary(summary string) {
	n.post(summary)
}

// BackendChanged posts health transitions, once per edge. Repeated probes in
// the same state stay quiet.
func (n *Notifier) BackendChanged(degraded bool, provider string) {
	n.mu.Lock()
	changed := degraded != n.lastDegraded
	n.lastDegraded = degraded
	n.mu.Unlock()
	if !changed {
		return
	}

	if degraded {
		n.post(fmt.Sprintf(":warning: analysis backend %s is unreachable, serving heuristic fallbacks", provider))
	} else {
		n.post(fmt.Sprintf(":white_check_mark: analysis backend %s recovered", provider))
	}
}
