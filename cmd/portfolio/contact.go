package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denischpt/portfolio/internal/config"
	"github.com/denischpt/portfolio/internal/contactclient"
	"github.com/denischpt/portfolio/internal/form"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/models"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact relay",
	Long: `Send a message through the contact relay. The message is checked locally
first, then posted once; nothing is retried.

Example:
  portfolio contact --name "Denis" --email denis@example.com --message "Bonjour !"
  portfolio contact --locale en --endpoint https://denischpt-portfolio.fr/api/contact ...`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadClient()
		if err != nil {
			logger.Error("Error loading config: %v", err)
			os.Exit(1)
		}

		if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
			cfg.APIURL = endpoint
		}
		if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
			cfg.Locale = locale
		}

		lang, ok := i18n.ParseTag(cfg.Locale)
		if !ok {
			logger.Warn("Unsupported locale %q, using %s", cfg.Locale, i18n.DefaultTag)
			lang = i18n.DefaultTag
		}

		client := contactclient.New(contactclient.Config{
			Endpoint:       cfg.APIURL,
			SendingEnabled: cfg.SendingEnabled,
			Timeout:        cfg.Timeout,
			Language:       lang,
		})

		controller := form.NewController(client, models.ContactSubmission{}, form.Options{
			ResetDelay: cfg.ResetDelay,
			Language:   lang,
		})
		defer controller.Close()

		for _, field := range []models.Field{models.FieldName, models.FieldEmail, models.FieldMessage} {
			value, _ := cmd.Flags().GetString(string(field))
			controller.Set(field, value)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Spinner while sending
		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Sending message..."
		s.Start()
		err = controller.Submit(ctx)
		s.Stop()

		if err != nil {
			var te *contactclient.TransportError
			if errors.As(err, &te) {
				logger.Debug("Contact submission failed (%s): %v", te.Kind, errors.Unwrap(te))
			}
			fmt.Fprintln(os.Stderr, "✗ "+controller.State().LastError)
			stop()
			controller.Close()
			os.Exit(1)
		}

		fmt.Println("✓ " + i18n.Text(lang, i18n.KeySent))
	},
}
