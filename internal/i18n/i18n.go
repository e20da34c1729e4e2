package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleTR = "tr"
	LocaleEN = "en"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleTR

const localeContextKey = "locale"

// ResolveLocale 解析请求语言（query > header > 默认值）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if value, ok := c.Get(localeContextKey); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	locale := normalizeLocale(c.Query("locale"))
	if locale == "" {
		locale = normalizeLocale(c.GetHeader("Accept-Language"))
	}
	if locale == "" {
		locale = DefaultLocale
	}
	c.Set(localeContextKey, locale)
	return locale
}

func normalizeLocale(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	// Accept-Language 可能携带权重列表，仅取第一段
	if idx := strings.IndexAny(trimmed, ",;"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	switch {
	case strings.HasPrefix(trimmed, "tr"):
		return LocaleTR
	case strings.HasPrefix(trimmed, "en"):
		return LocaleEN
	default:
		return ""
	}
}

// T 翻译消息 key，未命中时回退英文，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[LocaleEN][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化，消息模板可携带占位符
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

var catalog = map[string]map[string]string{
	LocaleTR: {
		"error.bad_request":             "Geçersiz istek",
		"error.unauthorized":            "Giriş yapmanız gerekiyor",
		"error.auth_header_missing":     "Yetkilendirme başlığı eksik",
		"error.auth_header_invalid":     "Yetkilendirme başlığı geçersiz",
		"error.token_invalid":           "Oturum geçersiz, lütfen tekrar giriş yapın",
		"error.token_revoked":           "Oturum sonlandırılmış, lütfen tekrar giriş yapın",
		"error.user_disabled":           "Hesap devre dışı",
		"error.jwt_secret_missing":      "Sunucu yapılandırma hatası",
		"error.user_id_invalid":         "Kullanıcı kimliği geçersiz",
		"error.user_id_type_invalid":    "Kullanıcı kimliği çözümlenemedi",
		"error.email_taken":             "Bu e-posta adresi zaten kayıtlı",
		"error.credentials_invalid":     "E-posta veya parola hatalı",
		"error.password_weak":           "Parola yeterince güçlü değil",
		"error.password_min_length":     "Parola en az %d karakter olmalı",
		"error.password_require_upper":  "Parola en az bir büyük harf içermeli",
		"error.password_require_lower":  "Parola en az bir küçük harf içermeli",
		"error.password_require_number": "Parola en az bir rakam içermeli",
		"error.register_failed":         "Kayıt tamamlanamadı",
		"error.login_failed":            "Giriş yapılamadı",
		"error.user_fetch_failed":       "Kullanıcı bilgisi yüklenemedi",
		"error.rate_limited":            "Çok fazla deneme, %d saniye sonra tekrar deneyin",
		"error.rate_limit_unavailable":  "Hizmet geçici olarak kullanılamıyor",
		"error.category_not_found":      "Kategori bulunamadı",
		"error.category_fetch_failed":   "Kategoriler yüklenemedi",
		"error.product_not_found":       "Ürün bulunamadı",
		"error.product_unavailable":     "Ürün şu anda satışta değil",
		"error.product_fetch_failed":    "Ürünler yüklenemedi",
		"error.variant_not_found":       "Beden bulunamadı",
		"error.color_not_found":         "Renk bulunamadı",
		"error.insufficient_stock":      "Yeterli stok yok",
		"error.insufficient_stock_left": "Yeterli stok yok, mevcut: %d",
		"error.cart_item_not_found":     "Sepet satırı bulunamadı",
		"error.cart_empty":              "Sepetiniz boş",
		"error.cart_fetch_failed":       "Sepet yüklenemedi",
		"error.cart_update_failed":      "Sepet güncellenemedi",
		"error.coupon_not_found":        "Böyle bir kupon kodu yok",
		"error.coupon_invalid":          "Kupon geçersiz veya süresi dolmuş",
		"error.coupon_fetch_failed":     "Kupon bilgisi yüklenemedi",
		"error.order_not_found":         "Sipariş bulunamadı",
		"error.order_create_failed":     "Sipariş oluşturulamadı",
		"error.order_fetch_failed":      "Sipariş yüklenemedi",
		"error.order_update_failed":     "Sipariş güncellenemedi",
		"error.order_status_invalid":    "Sipariş durumu bu işleme izin vermiyor",
		"error.favorite_failed":         "Favori işlemi başarısız",
		"error.favorite_fetch_failed":   "Favoriler yüklenemedi",
		"error.internal":                "Beklenmeyen bir hata oluştu",
	},
	LocaleEN: {
		"error.bad_request":             "Invalid request",
		"error.unauthorized":            "Authentication required",
		"error.auth_header_missing":     "Authorization header missing",
		"error.auth_header_invalid":     "Authorization header invalid",
		"error.token_invalid":           "Session invalid, please sign in again",
		"error.token_revoked":           "Session revoked, please sign in again",
		"error.user_disabled":           "Account disabled",
		"error.jwt_secret_missing":      "Server configuration error",
		"error.user_id_invalid":         "Invalid user id",
		"error.user_id_type_invalid":    "Could not resolve user id",
		"error.email_taken":             "This email is already registered",
		"error.credentials_invalid":     "Incorrect email or password",
		"error.password_weak":           "Password is not strong enough",
		"error.password_min_length":     "Password must be at least %d characters",
		"error.password_require_upper":  "Password must contain an uppercase letter",
		"error.password_require_lower":  "Password must contain a lowercase letter",
		"error.password_require_number": "Password must contain a digit",
		"error.register_failed":         "Registration failed",
		"error.login_failed":            "Login failed",
		"error.user_fetch_failed":       "Failed to load user profile",
		"error.rate_limited":            "Too many attempts, try again in %d seconds",
		"error.rate_limit_unavailable":  "Service temporarily unavailable",
		"error.category_not_found":      "Category not found",
		"error.category_fetch_failed":   "Failed to load categories",
		"error.product_not_found":       "Product not found",
		"error.product_unavailable":     "Product is not on sale right now",
		"error.product_fetch_failed":    "Failed to load products",
		"error.variant_not_found":       "Size not found",
		"error.color_not_found":         "Color not found",
		"error.insufficient_stock":      "Not enough stock",
		"error.insufficient_stock_left": "Not enough stock, available: %d",
		"error.cart_item_not_found":     "Cart item not found",
		"error.cart_empty":              "Your cart is empty",
		"error.cart_fetch_failed":       "Failed to load cart",
		"error.cart_update_failed":      "Failed to update cart",
		"error.coupon_not_found":        "No such coupon code",
		"error.coupon_invalid":          "Coupon is invalid or expired",
		"error.coupon_fetch_failed":     "Failed to load coupon details",
		"error.order_not_found":         "Order not found",
		"error.order_create_failed":     "Failed to create order",
		"error.order_fetch_failed":      "Failed to load order",
		"error.order_update_failed":     "Failed to update order",
		"error.order_status_invalid":    "Order status does not allow this action",
		"error.favorite_failed":         "Favorite operation failed",
		"error.favorite_fetch_failed":   "Failed to load favorites",
		"error.internal":                "An unexpected error occurred",
	},
}
