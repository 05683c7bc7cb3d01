package referring

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
	"github.com/vfg2006/referral-landing-api/internal/domain"
)

// Mensagens de validação devolvidas ao cliente sem alteração
const (
	MsgNameRequired          = "Name is required"
	MsgEmailRequired         = "Email is required"
	MsgReferrerRequired      = "Referrer is required"
	MsgEarningsRequired      = "Earnings information is required"
	MsgEarningsNotObject     = "Earnings information must be an object"
	MsgDailyEarningsRequired = "Daily earnings is required"
	MsgPhoneNotString        = "Phone must be a string"
)

type requiredField struct {
	key     string
	message string
}

var requiredFields = []requiredField{
	{key: "name", message: MsgNameRequired},
	{key: "email", message: MsgEmailRequired},
	{key: "referrer", message: MsgReferrerRequired},
}

type derivedField struct {
	key        string
	multiplier float64
}

var earningsFields = []string{"daily", "weekly", "monthly", "yearly"}

var derivedFields = []derivedField{
	{key: "weekly", multiplier: domain.WeeklyMultiplier},
	{key: "monthly", multiplier: domain.MonthlyMultiplier},
	{key: "yearly", multiplier: domain.YearlyMultiplier},
}

// Normalize valida uma submissão sem tipagem e completa os ganhos derivados do valor diário.
// Todos os erros são acumulados; o mapa de entrada nunca é alterado.
func Normalize(data map[string]any) ([]string, map[string]any) {
	errs := make([]string, 0)
	normalized := make(map[string]any, len(data))
	for k, v := range data {
		normalized[k] = v
	}

	for _, field := range requiredFields {
		value, ok := identityValue(normalized[field.key])
		if !ok {
			errs = append(errs, field.message)
			continue
		}
		normalized[field.key] = value
	}

	// phone é opcional, mas precisa ser um valor escalar
	if phone, present := normalized["phone"]; present && phone != nil {
		value, err := cast.ToStringE(phone)
		if err != nil {
			errs = append(errs, MsgPhoneNotString)
		} else {
			normalized["phone"] = value
		}
	}

	rawEarnings, present := normalized["earnings"]
	if !present || rawEarnings == nil {
		return append(errs, MsgEarningsRequired), normalized
	}

	source, ok := rawEarnings.(map[string]any)
	if !ok {
		return append(errs, MsgEarningsNotObject), normalized
	}

	earnings := make(map[string]any, len(source))
	for k, v := range source {
		earnings[k] = v
	}
	normalized["earnings"] = earnings

	if isFalsy(earnings["daily"]) {
		errs = append(errs, MsgDailyEarningsRequired)
	}

	dailyValid := false
	for _, key := range earningsFields {
		value, present := earnings[key]
		if !present {
			continue
		}

		number, err := toNumber(value)
		if err != nil {
			errs = append(errs, invalidNumberMessage(key))
			continue
		}

		earnings[key] = number
		if key == "daily" {
			dailyValid = true
		}
	}

	if !dailyValid {
		return errs, normalized
	}

	daily := earnings["daily"].(float64)
	for _, field := range derivedFields {
		if !isFalsy(earnings[field.key]) {
			continue
		}

		derived := daily * field.multiplier
		if !isFinite(derived) {
			errs = append(errs, invalidNumberMessage(field.key))
			continue
		}
		earnings[field.key] = derived
	}

	return errs, normalized
}

func invalidNumberMessage(key string) string {
	return fmt.Sprintf("%s%s earnings must be a number", strings.ToUpper(key[:1]), key[1:])
}

// identityValue converte o campo para string aparada; falso quando ausente ou vazio
func identityValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	str, err := cast.ToStringE(value)
	if err != nil {
		return "", false
	}

	str = strings.TrimSpace(str)
	return str, str != ""
}

// toNumber converte o valor para float64 finito; NaN e infinitos são rejeitados
func toNumber(value any) (float64, error) {
	var (
		number float64
		err    error
	)

	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("unable to cast nil to float64")
	case string:
		number, err = cast.ToFloat64E(strings.TrimSpace(v))
	case map[string]any, []any:
		return 0, fmt.Errorf("unable to cast %#v of type %T to float64", value, value)
	default:
		number, err = cast.ToFloat64E(value)
	}
	if err != nil {
		return 0, err
	}

	if !isFinite(number) {
		return 0, fmt.Errorf("unable to use non-finite value %v", number)
	}

	return number, nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// isFalsy segue a noção de "valor vazio" de um formulário JSON
func isFalsy(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}

	return false
}
