package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	"github.com/smallbiznis/railtrack/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("manufacturer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	id := strings.TrimSpace(req.ManufacturerID)
	if id == "" {
		id = "MFG_" + s.genID.Generate().String()
	}

	now := time.Now().UTC()
	m := &domain.Manufacturer{
		ManufacturerID: id,
		Name:           name,
		ContactEmail:   strings.TrimSpace(req.Contact.Email),
		ContactPhone:   strings.TrimSpace(req.Contact.Phone),
		PublicKey:      strings.TrimSpace(req.PublicKey),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, s.db, m); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrExists
		}
		return nil, err
	}

	s.log.Info("manufacturer created", zap.String("manufacturer_id", m.ManufacturerID))

	resp := toResponse(m)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, manufacturerID string) (*domain.Response, error) {
	m, err := s.repo.FindByID(ctx, s.db, strings.TrimSpace(manufacturerID))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(m)
	return &resp, nil
}

func (s *Service) UpdateContact(ctx context.Context, req domain.UpdateContactRequest) (*domain.Response, error) {
	m, err := s.repo.FindByID(ctx, s.db, strings.TrimSpace(req.ManufacturerID))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	m.ContactEmail = strings.TrimSpace(req.Contact.Email)
	m.ContactPhone = strings.TrimSpace(req.Contact.Phone)
	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, m); err != nil {
		return nil, err
	}

	resp := toResponse(m)
	return &resp, nil
}

func toResponse(m *domain.Manufacturer) domain.Response {
	return domain.Response{
		ManufacturerID: m.ManufacturerID,
		Name:           m.Name,
		Contact: domain.Contact{
			Email: m.ContactEmail,
			Phone: m.ContactPhone,
		},
		PublicKey: m.PublicKey,
		CreatedAt: m.CreatedAt,
	}
}
