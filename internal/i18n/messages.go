package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key identifies a catalog entry.
type Key string

const (
	// Validation
	KeyNameTooShort    Key = "contact.name_too_short"
	KeyInvalidEmail    Key = "contact.invalid_email"
	KeyMessageTooShort Key = "contact.message_too_short"

	// Relay responses
	KeySent                 Key = "contact.sent"
	KeyMethodNotAllowed     Key = "contact.method_not_allowed"
	KeyServiceMisconfigured Key = "contact.service_misconfigured"
	KeySendFailed           Key = "contact.send_failed"
	KeyUnexpectedError      Key = "contact.unexpected_error"
	KeyInvalidBody          Key = "contact.invalid_body"
	KeyRateLimited          Key = "contact.rate_limited"
	KeyCaptchaFailed        Key = "contact.captcha_failed"
	KeyRelayHealthy         Key = "relay.healthy"

	// Transport client
	KeySendingDisabled    Key = "client.sending_disabled"
	KeyServiceUnreachable Key = "client.service_unreachable"
	KeyGenericSendError   Key = "client.generic_send_error"
	KeyClientUnexpected   Key = "client.unexpected_error"

	// Outbound notification
	KeyNotificationTitle Key = "notification.title"
	KeyFieldName         Key = "notification.field_name"
	KeyFieldEmail        Key = "notification.field_email"
	KeyFieldMessage      Key = "notification.field_message"
	KeyFieldIP           Key = "notification.field_ip"
	KeyFieldDate         Key = "notification.field_date"
)

var catalog = map[language.Tag]map[Key]string{
	language.French: {
		KeyNameTooShort:    "Le nom doit contenir au moins 2 caractères",
		KeyInvalidEmail:    "Veuillez entrer une adresse email valide",
		KeyMessageTooShort: "Le message doit contenir au moins 5 caractères",

		KeySent:                 "Message envoyé avec succès!",
		KeyMethodNotAllowed:     "Méthode non autorisée",
		KeyServiceMisconfigured: "Le service de contact n'est pas configuré correctement.",
		KeySendFailed:           "Impossible d'envoyer le message. Veuillez réessayer.",
		KeyUnexpectedError:      "Une erreur est survenue. Veuillez réessayer plus tard.",
		KeyInvalidBody:          "Requête invalide.",
		KeyRateLimited:          "Trop de requêtes. Veuillez réessayer plus tard.",
		KeyCaptchaFailed:        "La vérification anti-robot a échoué.",
		KeyRelayHealthy:         "Le relais de contact est opérationnel",

		KeySendingDisabled:    "Le formulaire de contact est désactivé dans cet environnement.",
		KeyServiceUnreachable: "Le service de contact est temporairement indisponible. Veuillez réessayer.",
		KeyGenericSendError:   "Erreur lors de l'envoi du message",
		KeyClientUnexpected:   "Une erreur inattendue s'est produite. Veuillez réessayer.",

		KeyNotificationTitle: "📬 Nouveau message du portfolio",
		KeyFieldName:         "👤 Nom",
		KeyFieldEmail:        "📧 Email",
		KeyFieldMessage:      "💬 Message",
		KeyFieldIP:           "🌐 IP",
		KeyFieldDate:         "📅 Date",
	},
	language.English: {
		KeyNameTooShort:    "Name must be at least 2 characters long",
		KeyInvalidEmail:    "Please enter a valid email address",
		KeyMessageTooShort: "Message must be at least 5 characters long",

		KeySent:                 "Message sent successfully!",
		KeyMethodNotAllowed:     "Method not allowed",
		KeyServiceMisconfigured: "The contact service is not configured correctly.",
		KeySendFailed:           "Could not send the message. Please try again.",
		KeyUnexpectedError:      "An error occurred. Please try again later.",
		KeyInvalidBody:          "Invalid request.",
		KeyRateLimited:          "Too many requests. Please try again later.",
		KeyCaptchaFailed:        "Anti-bot verification failed.",
		KeyRelayHealthy:         "Contact relay is running",

		KeySendingDisabled:    "The contact form is disabled in this environment.",
		KeyServiceUnreachable: "The contact service is temporarily unavailable. Please try again.",
		KeyGenericSendError:   "Error while sending the message",
		KeyClientUnexpected:   "An unexpected error occurred. Please try again.",

		KeyNotificationTitle: "📬 New portfolio message",
		KeyFieldName:         "👤 Name",
		KeyFieldEmail:        "📧 Email",
		KeyFieldMessage:      "💬 Message",
		KeyFieldIP:           "🌐 IP",
		KeyFieldDate:         "📅 Date",
	},
}

func init() {
	for tag, entries := range catalog {
		for key, text := range entries {
			if err := message.SetString(tag, string(key), text); err != nil {
				panic("i18n: register " + string(key) + ": " + err.Error())
			}
		}
	}
}
