// Package validate holds the pure validators for customer and admin
// submitted records. It is the single source of truth for acceptable
// input: nothing here touches the store, and validation failures never
// reach the persistence layer.
package validate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError is one field-level validation message, in Arabic, keyed by
// the wire name of the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors keeps messages in field declaration order.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Get returns the message for a field, or "" if the field passed.
func (e FieldErrors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var (
	// Letters of the Arabic script plus word characters; rejects
	// punctuation and symbols in customer names.
	namePattern = regexp.MustCompile(`^[\p{Arabic}\s\w]+$`)

	// Egyptian mobile numbers: 11 digits, carrier prefix 01x. Numbers
	// already carrying a country code are rejected.
	phonePattern = regexp.MustCompile(`^01[0-9]{9}$`)

	phoneStripper = strings.NewReplacer(" ", "", "\t", "", "-", "")
)

const (
	// MaxUploadSize is the upload ceiling: 5 MiB.
	MaxUploadSize = 5 * 1024 * 1024
)

var maxProductPrice = decimal.NewFromInt(999999)

// OrderInput is raw customer input from the order intake form.
type OrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerNotes   string
}

// Order validates and normalizes an order form submission. On success the
// returned input has the name/address trimmed and the phone stripped of
// whitespace and dashes. On failure it returns one message per invalid
// field, in field declaration order.
func Order(in OrderInput) (OrderInput, FieldErrors) {
	var errs FieldErrors

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	switch {
	case len([]rune(in.CustomerName)) < 2:
		errs = append(errs, FieldError{"customer_name", "الاسم يجب أن يكون على الأقل حرفين"})
	case len([]rune(in.CustomerName)) > 100:
		errs = append(errs, FieldError{"customer_name", "الاسم طويل جداً"})
	case !namePattern.MatchString(in.CustomerName):
		errs = append(errs, FieldError{"customer_name", "الاسم يحتوي على أحرف غير صالحة"})
	}

	in.CustomerPhone = phoneStripper.Replace(strings.TrimSpace(in.CustomerPhone))
	if !phonePattern.MatchString(in.CustomerPhone) {
		errs = append(errs, FieldError{"customer_phone", "رقم الهاتف غير صحيح (يجب أن يبدأ بـ 01 ويحتوي على 11 رقم)"})
	}

	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	switch {
	case len([]rune(in.CustomerAddress)) < 10:
		errs = append(errs, FieldError{"customer_address", "العنوان يجب أن يكون مفصلاً أكثر"})
	case len([]rune(in.CustomerAddress)) > 500:
		errs = append(errs, FieldError{"customer_address", "العنوان طويل جداً"})
	}

	in.CustomerNotes = strings.TrimSpace(in.CustomerNotes)
	if len([]rune(in.CustomerNotes)) > 300 {
		errs = append(errs, FieldError{"customer_notes", "الملاحظات طويلة جداً"})
	}

	if errs != nil {
		return OrderInput{}, errs
	}
	return in, nil
}

// ProductInput is raw admin input from the product editing form.
// IsActive pointer distinguishes "omitted" (defaults to true) from an
// explicit false.
type ProductInput struct {
	Name              string
	Description       string
	Price             decimal.Decimal
	ImageURL          string
	Benefits          []BenefitInput
	UsageInstructions string
	IsActive          *bool
}

// BenefitInput is one entry of the product's benefit list.
type BenefitInput struct {
	Title       string
	Description string
	Icon        string
}

// NormalizedProduct is a ProductInput with defaults applied.
type NormalizedProduct struct {
	Name              string
	Description       string
	Price             decimal.Decimal
	ImageURL          string
	Benefits          []BenefitInput
	UsageInstructions string
	IsActive          bool
}

// Product validates a product form submission.
func Product(in ProductInput) (NormalizedProduct, FieldErrors) {
	var errs FieldErrors

	in.Name = strings.TrimSpace(in.Name)
	switch {
	case len([]rune(in.Name)) < 2:
		errs = append(errs, FieldError{"name", "اسم المنتج يجب أن يكون على الأقل حرفين"})
	case len([]rune(in.Name)) > 100:
		errs = append(errs, FieldError{"name", "اسم المنتج طويل جداً"})
	}

	if len([]rune(in.Description)) > 1000 {
		errs = append(errs, FieldError{"description", "الوصف طويل جداً"})
	}

	if !in.Price.IsPositive() {
		errs = append(errs, FieldError{"price", "السعر يجب أن يكون أكبر من صفر"})
	} else if in.Price.GreaterThan(maxProductPrice) {
		errs = append(errs, FieldError{"price", "السعر مرتفع جداً"})
	}

	if in.ImageURL != "" && !isAbsoluteURL(in.ImageURL) {
		errs = append(errs, FieldError{"image_url", "رابط الصورة غير صحيح"})
	}

	if len([]rune(in.UsageInstructions)) > 1000 {
		errs = append(errs, FieldError{"usage_instructions", "تعليمات الاستخدام طويلة جداً"})
	}

	if errs != nil {
		return NormalizedProduct{}, errs
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return NormalizedProduct{
		Name:              in.Name,
		Description:       strings.TrimSpace(in.Description),
		Price:             in.Price,
		ImageURL:          in.ImageURL,
		Benefits:          in.Benefits,
		UsageInstructions: strings.TrimSpace(in.UsageInstructions),
		IsActive:          active,
	}, nil
}

// SiteContentInput is raw admin input for one content key.
type SiteContentInput struct {
	ContentKey   string
	ContentValue string
	ContentType  string
}

// SiteContent validates a content upsert. ContentType defaults to "text"
// when omitted.
func SiteContent(in SiteContentInput) (SiteContentInput, FieldErrors) {
	var errs FieldErrors

	in.ContentKey = strings.TrimSpace(in.ContentKey)
	switch {
	case in.ContentKey == "":
		errs = append(errs, FieldError{"content_key", "مفتاح المحتوى مطلوب"})
	case len([]rune(in.ContentKey)) > 100:
		errs = append(errs, FieldError{"content_key", "مفتاح المحتوى طويل جداً"})
	}

	if in.ContentValue == "" {
		errs = append(errs, FieldError{"content_value", "قيمة المحتوى مطلوبة"})
	}

	switch in.ContentType {
	case "":
		in.ContentType = "text"
	case "text", "boolean", "json", "html":
	default:
		errs = append(errs, FieldError{"content_type", "نوع المحتوى غير صحيح"})
	}

	if errs != nil {
		return SiteContentInput{}, errs
	}
	return in, nil
}

// UploadInput describes an uploaded file.
type UploadInput struct {
	Filename    string
	Size        int64
	ContentType string
}

// Upload validates an image upload: present, at most 5 MiB, and one of
// JPEG, PNG, or WebP.
func Upload(in UploadInput) FieldErrors {
	var errs FieldErrors

	if in.Filename == "" || in.Size == 0 {
		errs = append(errs, FieldError{"file", "يجب اختيار ملف"})
		return errs
	}
	if in.Size > MaxUploadSize {
		errs = append(errs, FieldError{"file", "حجم الملف يجب أن يكون أقل من 5 ميجابايت"})
	}
	switch in.ContentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		errs = append(errs, FieldError{"file", "نوع الملف غير مدعوم (يجب أن يكون JPEG, PNG, أو WebP)"})
	}
	return errs
}

// AdminLogin validates an admin password attempt.
func AdminLogin(password string) FieldErrors {
	if len(password) < 6 {
		return FieldErrors{{"password", "كلمة المرور يجب أن تكون على الأقل 6 أحرف"}}
	}
	return nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}
