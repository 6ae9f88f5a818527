package notifier

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/school-activities-api/internal/config"
)

type Notifier interface {
	NotifySignup(activityName, email string) error
	NotifyUnregister(activityName, email string) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// FromConfig builds a notifier from the bot token and channel. It returns
// (nil, nil) when notifications are not configured.
func FromConfig(cfg *config.Config) (Notifier, error) {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		return nil, nil
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	if cfg.NotifyTimeout > 0 {
		session.Client = &http.Client{Timeout: cfg.NotifyTimeout}
	}
	return NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID), nil
}

func (n *DiscordNotifier) NotifySignup(activityName, email string) error {
	return n.send(signupMessage(activityName, email))
}

func (n *DiscordNotifier) NotifyUnregister(activityName, email string) error {
	return n.send(unregisterMessage(activityName, email))
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}

func signupMessage(activityName, email string) string {
	return fmt.Sprintf("🎉 **New Sign-Up**\n**Activity:** %s\n**Student:** %s", activityName, email)
}

func unregisterMessage(activityName, email string) string {
	return fmt.Sprintf("👋 **Unregistered**\n**Activity:** %s\n**Student:** %s", activityName, email)
}
