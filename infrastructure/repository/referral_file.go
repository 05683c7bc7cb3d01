package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	submissionsDir    = "submissions"
	generatedPagesDir = "generated_pages"
	pageFileName      = "index.html"
)

type referralFileRepository struct {
	dir string
}

// NewReferralFileRepository grava cada indicação em <dataDir>/submissions/<id>.json
func NewReferralFileRepository(dataDir string) (ReferralRepository, error) {
	dir := filepath.Join(dataDir, submissionsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "erro ao criar diretório %s", dir)
	}

	return &referralFileRepository{dir: dir}, nil
}

func (r *referralFileRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *referralFileRepository) Put(_ context.Context, id string, referral *domain.Referral) error {
	if err := ValidateReferralID(id); err != nil {
		return err
	}

	data, err := json.MarshalIndent(referral, "", "  ")
	if err != nil {
		return errors.Wrap(err, "erro ao serializar indicação")
	}

	return writeOnce(r.path(id), data)
}

func (r *referralFileRepository) Get(_ context.Context, id string) (*domain.Referral, error) {
	if err := ValidateReferralID(id); err != nil {
		return nil, err
	}

	return r.read(r.path(id))
}

func (r *referralFileRepository) read(path string) (*domain.Referral, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReferralNotFound
		}
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}

	referral := &domain.Referral{}
	if err := json.Unmarshal(data, referral); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar %s", path)
	}

	return referral, nil
}

func (r *referralFileRepository) List(_ context.Context, filters domain.ReferralFilters) ([]*domain.Referral, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar %s", r.dir)
	}

	referrals := make([]*domain.Referral, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		referral, err := r.read(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			// Um arquivo corrompido não deve derrubar a listagem inteira
			logrus.WithError(err).WithField("file", entry.Name()).Warn("Ignorando submissão ilegível")
			continue
		}

		if matchesFilters(referral, filters) {
			referrals = append(referrals, referral)
		}
	}

	sortNewestFirst(referrals)
	return referrals, nil
}

type pageFileRepository struct {
	dir string
}

// NewPageFileRepository grava cada página em <dataDir>/generated_pages/<id>/index.html
func NewPageFileRepository(dataDir string) (PageRepository, error) {
	dir := filepath.Join(dataDir, generatedPagesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "erro ao criar diretório %s", dir)
	}

	return &pageFileRepository{dir: dir}, nil
}

func (r *pageFileRepository) PutPage(_ context.Context, id string, html []byte) error {
	if err := ValidateReferralID(id); err != nil {
		return err
	}

	pageDir := filepath.Join(r.dir, id)
	if err := os.MkdirAll(pageDir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", pageDir)
	}

	return writeOnce(filepath.Join(pageDir, pageFileName), html)
}

func (r *pageFileRepository) GetPage(_ context.Context, id string) ([]byte, error) {
	if err := ValidateReferralID(id); err != nil {
		return nil, err
	}

	path := filepath.Join(r.dir, id, pageFileName)
	html, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReferralNotFound
		}
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}

	return html, nil
}

// writeOnce cria o arquivo falhando se ele já existir
func writeOnce(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrReferralAlreadyExists
		}
		return errors.Wrapf(err, "erro ao criar %s", path)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return errors.Wrapf(err, "erro ao escrever %s", path)
	}

	return errors.Wrapf(file.Close(), "erro ao fechar %s", path)
}
