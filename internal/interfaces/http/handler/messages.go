package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	msgSyncFinished       = "Sync finished: %d products sent successfully, %d failed"
	msgSyncCancelled      = "Sync cancelled: %d of %d products processed, %d sent successfully, %d failed"
	msgTestSucceeded      = "Integration test succeeded!"
	msgTestFailed         = "Integration test failed"
	msgConfigComplete     = "TikTok configuration is complete"
	msgConfigIncomplete   = "TikTok configuration is incomplete. Check the variables: TIKTOK_ACCESS_TOKEN, TIKTOK_CLIENT_KEY, TIKTOK_CLIENT_SECRET, TIKTOK_PARTNER_ID"
	msgServiceRunning     = "Catalog sync service is running"
	msgServiceUnavailable = "Catalog sync service is unavailable"
)

// supportedLanguages lists the response languages, default first
var supportedLanguages = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var messageCatalog = newMessageCatalog()

func newMessageCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.BrazilianPortuguese))

	pt := map[string]string{
		msgSyncFinished:       "Sincronização concluída: %d produtos enviados com sucesso, %d falharam",
		msgSyncCancelled:      "Sincronização cancelada: %d de %d produtos processados, %d enviados com sucesso, %d falharam",
		msgTestSucceeded:      "Teste de integração realizado com sucesso!",
		msgTestFailed:         "Falha no teste de integração",
		msgConfigComplete:     "Configuração do TikTok está completa",
		msgConfigIncomplete:   "Configuração do TikTok está incompleta. Verifique as variáveis: TIKTOK_ACCESS_TOKEN, TIKTOK_CLIENT_KEY, TIKTOK_CLIENT_SECRET, TIKTOK_PARTNER_ID",
		msgServiceRunning:     "Serviço de sincronização de catálogo em execução",
		msgServiceUnavailable: "Serviço de sincronização de catálogo indisponível",
	}
	for key, text := range pt {
		_ = b.SetString(language.BrazilianPortuguese, key, text)
		_ = b.SetString(language.English, key, key)
	}
	return b
}

// negotiateLanguage picks the response language from Accept-Language.
// Unsupported or missing preferences get Brazilian Portuguese.
func negotiateLanguage(acceptLanguage string) language.Tag {
	_, index := language.MatchStrings(languageMatcher, acceptLanguage)
	return supportedLanguages[index]
}

// printerFor returns a message printer for the request language
func printerFor(c *gin.Context) *message.Printer {
	tag := negotiateLanguage(c.GetHeader("Accept-Language"))
	return message.NewPrinter(tag, message.Catalog(messageCatalog))
}
