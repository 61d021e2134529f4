package generate

import (
	"fmt"
	"time"

	coreerrors "github.com/dnslin/feedback-links/core/errors"
	"github.com/dnslin/feedback-links/core/link"
)

// DateLayout 入住/离店日期格式（yyyy-MM-dd）。
const DateLayout = "2006-01-02"

// 多访客模式下合成的访客信息。
const (
	GuestFirstName   = "Test"
	guestEmailFormat = "test.email.%s@shijigroup.com"
)

// Form 一次生成所需的全部表单输入，按值传入。
type Form struct {
	Environment link.Environment
	Encryption  link.Encryption

	APIKey    string
	SecretKey string
	SurveyID  string
	PMSID     string

	Checkin   string
	Checkout  string
	FirstName string
	LastName  string
	Email     string

	Params map[string]string // 额外参数
}

// MaxGuests 单次请求允许的访客数量上限。
const MaxGuests = 10000

// Request 生成请求。Multiple 为 false 时只生成一条链接。
type Request struct {
	Form     Form
	Multiple bool
	Guests   int
}

// Count 返回本次请求应生成的链接数量。
func (r Request) Count() int {
	if !r.Multiple {
		return 1
	}
	return r.Guests
}

// Validate 校验请求的前置条件。
func (r Request) Validate() error {
	if r.Multiple && r.Guests <= 0 {
		return coreerrors.Validation("访客数量必须为正整数，实际 %d", r.Guests)
	}
	if r.Multiple && r.Guests > MaxGuests {
		return coreerrors.Validation("访客数量不能超过 %d，实际 %d", MaxGuests, r.Guests)
	}
	return r.Form.Validate(r.Multiple)
}

type namedValue struct {
	name  string
	value string
}

// Validate 校验表单必填项。多访客模式下邮箱由系统合成，不要求填写。
func (f Form) Validate(multiple bool) error {
	if f.Encryption.Mode() == link.ModeUnsigned {
		return coreerrors.Validation("不支持的加密方式: %q", f.Encryption)
	}
	required := []namedValue{
		{"apiKey", f.APIKey},
		{"secretKey", f.SecretKey},
		{"surveyId", f.SurveyID},
		{"pmsId", f.PMSID},
		{"checkin", f.Checkin},
		{"checkout", f.Checkout},
	}
	if !multiple {
		required = append(required, namedValue{"email", f.Email})
	}
	for _, item := range required {
		if item.value == "" {
			return coreerrors.Validation("字段 %s 不能为空", item.name)
		}
	}
	for _, item := range []namedValue{{"checkin", f.Checkin}, {"checkout", f.Checkout}} {
		if _, err := time.Parse(DateLayout, item.value); err != nil {
			return coreerrors.Validation("字段 %s 日期格式应为 yyyy-MM-dd: %s", item.name, item.value)
		}
	}
	for k, v := range f.Params {
		if k == "" {
			return coreerrors.Validation("额外参数名不能为空")
		}
		if link.IsReserved(k) {
			return coreerrors.Validation("额外参数 %s 与保留字段重名", k)
		}
		if v == "" {
			return coreerrors.Validation("额外参数 %s 的值不能为空", k)
		}
	}
	return nil
}

// baseFields 返回不随访客变化的字段。
func (f Form) baseFields() link.FieldSet {
	return link.FieldSet{
		link.FieldAPIKey:   f.APIKey,
		link.FieldCheckin:  f.Checkin,
		link.FieldCheckout: f.Checkout,
		link.FieldPMSID:    f.PMSID,
		link.FieldSurveyID: f.SurveyID,
	}
}

// SingleFields 单访客模式使用表单中填写的访客信息。
func (f Form) SingleFields() (link.FieldSet, error) {
	fields := f.baseFields()
	fields[link.FieldEmail] = f.Email
	if f.FirstName != "" {
		fields[link.FieldFirstName] = f.FirstName
	}
	if f.LastName != "" {
		fields[link.FieldLastName] = f.LastName
	}
	if err := fields.Merge(f.Params); err != nil {
		return nil, err
	}
	return fields, nil
}

// GuestFields 多访客模式以随机后缀合成访客信息。
// 签名模式总是带上 firstName/lastName；加密模式仅在表单填写了对应字段时带上。
func (f Form) GuestFields(suffix string) (link.FieldSet, error) {
	fields := f.baseFields()
	fields[link.FieldEmail] = fmt.Sprintf(guestEmailFormat, suffix)
	signed := f.Encryption.Mode() == link.ModeSign
	if signed || f.FirstName != "" {
		fields[link.FieldFirstName] = GuestFirstName
	}
	if signed || f.LastName != "" {
		fields[link.FieldLastName] = suffix
	}
	if err := fields.Merge(f.Params); err != nil {
		return nil, err
	}
	return fields, nil
}

// linkRequest 组装单条链接请求。
func (f Form) linkRequest(fields link.FieldSet) link.Request {
	return link.Request{
		Environment: f.Environment,
		Encryption:  f.Encryption,
		SecretKey:   f.SecretKey,
		Fields:      fields,
	}
}
