package referring

import (
	"github.com/mitchellh/mapstructure"
	"github.com/vfg2006/referral-landing-api/internal/domain"
)

// DecodeReferral converte um mapa já normalizado (sem erros) para o tipo de domínio
func DecodeReferral(normalized map[string]any) (*domain.Referral, error) {
	referral := &domain.Referral{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           referral,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(normalized); err != nil {
		return nil, NewReferralError(ErrDecodeReferral, "", err.Error())
	}

	return referral, nil
}
