package usecase

import (
	"context"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
)

const recentJobOffers = 6

type jobOfferUsecase struct {
	offers    domain.JobOfferRepository
	companies domain.CompanyRepository
}

// NewJobOfferUsecase creates a new job offer usecase
func NewJobOfferUsecase(offers domain.JobOfferRepository, companies domain.CompanyRepository) domain.JobOfferUsecase {
	return &jobOfferUsecase{offers: offers, companies: companies}
}

// List returns the public, filtered job offer listing
func (uc *jobOfferUsecase) List(ctx context.Context, filter domain.JobOfferFilter) (*domain.Page[domain.JobOfferWithCompany], error) {
	filter.Page = filter.Page.Normalize()
	offers, total, err := uc.offers.Search(ctx, filter)
	if err != nil {
		return nil, fail(err, "")
	}
	page := domain.NewPage(offers, total, filter.Page)
	return &page, nil
}

func (uc *jobOfferUsecase) ListMine(ctx context.Context, actor domain.Actor, filter domain.JobOfferFilter) (*domain.Page[domain.JobOfferWithCompany], error) {
	owner := actor.UserID
	filter.OwnerID = &owner
	return uc.List(ctx, filter)
}

func (uc *jobOfferUsecase) Recent(ctx context.Context) ([]domain.JobOfferWithCompany, error) {
	offers, err := uc.offers.Recent(ctx, recentJobOffers)
	if err != nil {
		return nil, fail(err, "")
	}
	return offers, nil
}

func (uc *jobOfferUsecase) Get(ctx context.Context, id int64) (*domain.JobOfferWithCompany, error) {
	offer, err := uc.offers.GetByIDWithCompany(ctx, id)
	if err != nil {
		return nil, fail(err, "Job offer not found")
	}
	return offer, nil
}

func (uc *jobOfferUsecase) Create(ctx context.Context, actor domain.Actor, input domain.JobOfferInput) (*domain.JobOfferWithCompany, error) {
	if err := uc.checkCompany(ctx, actor, input.CompanyID); err != nil {
		return nil, err
	}
	offer := &domain.JobOffer{UserID: actor.UserID}
	applyJobOfferInput(offer, input)

	if err := uc.offers.Create(ctx, offer); err != nil {
		return nil, fail(err, "")
	}
	return uc.Get(ctx, offer.ID)
}

func (uc *jobOfferUsecase) Update(ctx context.Context, actor domain.Actor, id int64, input domain.JobOfferInput) (*domain.JobOfferWithCompany, error) {
	offer, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.CompanyID != offer.CompanyID {
		if err := uc.checkCompany(ctx, actor, input.CompanyID); err != nil {
			return nil, err
		}
	}
	applyJobOfferInput(offer, input)

	if err := uc.offers.Update(ctx, offer); err != nil {
		return nil, fail(err, "Job offer not found")
	}
	return uc.Get(ctx, offer.ID)
}

func (uc *jobOfferUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.offers.Delete(ctx, id); err != nil {
		return fail(err, "Job offer not found")
	}
	return nil
}

func (uc *jobOfferUsecase) owned(ctx context.Context, actor domain.Actor, id int64) (*domain.JobOffer, error) {
	offer, err := uc.offers.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, "Job offer not found")
	}
	if offer.UserID != actor.UserID {
		return nil, forbidden("You can only manage your own job offers.")
	}
	return offer, nil
}

// checkCompany requires the company to exist and belong to the actor
func (uc *jobOfferUsecase) checkCompany(ctx context.Context, actor domain.Actor, companyID int64) error {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return fail(err, "Company not found")
	}
	if company.UserID != actor.UserID {
		return forbidden("You can only post job offers for your own companies.")
	}
	return nil
}

func applyJobOfferInput(offer *domain.JobOffer, input domain.JobOfferInput) {
	offer.CompanyID = input.CompanyID
	offer.Title = input.Title
	offer.Description = input.Description
	offer.Status = input.Status
	offer.Type = input.Type
	offer.Deadline = input.Deadline
	offer.Salary = input.Salary
	offer.Location = input.Location
}
