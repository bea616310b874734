package handlers

// Human-readable summaries per error code, keyed by negotiated locale. The
// machine-readable detail rides alongside untranslated.
var messages = map[string]map[string]string{
	"invalid_parameter": {
		"en": "A request parameter is invalid.",
		"zh": "请求参数无效。",
	},
	"image_decode_failed": {
		"en": "The source image could not be decoded.",
		"zh": "无法解码源图像。",
	},
	"image_fetch_failed": {
		"en": "The source image could not be fetched.",
		"zh": "无法获取源图像。",
	},
	"font_unavailable": {
		"en": "No font is available for the requested text.",
		"zh": "没有可用于所请求文本的字体。",
	},
	"provider_error": {
		"en": "The image generation provider reported an error.",
		"zh": "图像生成服务返回错误。",
	},
	"bad_request": {
		"en": "The request payload could not be parsed.",
		"zh": "无法解析请求内容。",
	},
	"internal": {
		"en": "An internal error occurred.",
		"zh": "发生内部错误。",
	},
}

func messageFor(code, locale string) string {
	byLocale, ok := messages[code]
	if !ok {
		return code
	}
	if msg, ok := byLocale[locale]; ok {
		return msg
	}
	return byLocale["en"]
}
