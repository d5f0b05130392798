package middleware

import (
	"github.com/denischpt/portfolio/internal/api/constants"
	"github.com/denischpt/portfolio/internal/i18n"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// Language negotiates the response language from Accept-Language
func Language(fallback language.Tag) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyLanguage, i18n.ResolveTag(c.GetHeader("Accept-Language"), fallback))
		c.Next()
	}
}

// LanguageFrom returns the negotiated language, or the default one when the
// Language middleware did not run.
func LanguageFrom(c *gin.Context) language.Tag {
	if v, ok := c.Get(constants.ContextKeyLanguage); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return i18n.DefaultTag
}
