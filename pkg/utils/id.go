package utils

import (
	"strings"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	referralIDAlphabet  = "0123456789abcdef"
	referralIDSuffixLen = 8
	maxSlugLen          = 48
	fallbackSlug        = "referral"
)

// GenerateReferralID monta o ID no formato <nome_em_slug>_<8 caracteres hex>
func GenerateReferralID(name string) (string, error) {
	nameSlug := strings.ReplaceAll(slug.Make(name), "-", "_")
	if len(nameSlug) > maxSlugLen {
		nameSlug = strings.TrimRight(nameSlug[:maxSlugLen], "_")
	}
	if nameSlug == "" {
		nameSlug = fallbackSlug
	}

	suffix, err := gonanoid.Generate(referralIDAlphabet, referralIDSuffixLen)
	if err != nil {
		return "", err
	}

	return nameSlug + "_" + suffix, nil
}
