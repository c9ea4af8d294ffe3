package usecase

import (
	"context"
	"fmt"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/audit"
)

type companyUsecase struct {
	repo     domain.CompanyRepository
	audit    domain.AuditRecorder
	maxOwned int
}

// NewCompanyUsecase creates a new company usecase. maxOwned caps the
// companies a single user may register.
func NewCompanyUsecase(repo domain.CompanyRepository, auditor domain.AuditRecorder, maxOwned int) domain.CompanyUsecase {
	return &companyUsecase{repo: repo, audit: auditor, maxOwned: maxOwned}
}

func (uc *companyUsecase) List(ctx context.Context) ([]domain.Company, error) {
	companies, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fail(err, "")
	}
	return companies, nil
}

func (uc *companyUsecase) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Company, error) {
	companies, err := uc.repo.ListByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fail(err, "")
	}
	return companies, nil
}

func (uc *companyUsecase) Get(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, "Company not found")
	}
	return company, nil
}

func (uc *companyUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		UserID:      actor.UserID,
		Name:        input.Name,
		Website:     input.Website,
		Industry:    input.Industry,
		Description: input.Description,
		LogoURL:     input.LogoURL,
	}
	if err := uc.repo.CreateWithLimit(ctx, company, uc.maxOwned); err != nil {
		return nil, fail(err, fmt.Sprintf("You can only create up to %d companies.", uc.maxOwned))
	}

	uc.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionCompanyCreated,
		ActorID:   actor.UserID,
		Subject:   "company",
		SubjectID: company.ID,
	})
	return company, nil
}

func (uc *companyUsecase) Update(ctx context.Context, actor domain.Actor, id int64, input domain.CompanyInput) (*domain.Company, error) {
	company, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	company.Name = input.Name
	company.Website = input.Website
	company.Industry = input.Industry
	company.Description = input.Description
	company.LogoURL = input.LogoURL

	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, fail(err, "Company not found")
	}
	return company, nil
}

func (uc *companyUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fail(err, "Company not found")
	}
	return nil
}

func (uc *companyUsecase) owned(ctx context.Context, actor domain.Actor, id int64) (*domain.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, "Company not found")
	}
	if company.UserID != actor.UserID {
		return nil, forbidden("You can only manage your own companies.")
	}
	return company, nil
}
