package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

const localeKey contextKey = "locale"

var supported = []language.Tag{
	language.English, // fallback
	language.Chinese,
}

var matcher = language.NewMatcher(supported)

// Locale stores the negotiated response language in the request context.
// X-Locale wins over Accept-Language. Error messages are localized with it.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, _ := language.MatchStrings(matcher, r.Header.Get("X-Locale"), r.Header.Get("Accept-Language"))
		base, _ := tag.Base()
		ctx := context.WithValue(r.Context(), localeKey, base.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey).(string); ok && v != "" {
		return v
	}
	return "en"
}
