package handler

import (
	"time"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/Amsaho/jobhunt/internal/core/application"
	"github.com/Amsaho/jobhunt/internal/core/company"
	"github.com/Amsaho/jobhunt/internal/core/job"
)

type profileView struct {
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	ProfilePhoto string   `json:"profilePhoto"`
}

type userView struct {
	ID          string      `json:"_id"`
	Fullname    string      `json:"fullname"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Role        string      `json:"role"`
	Profile     profileView `json:"profile"`
}

func toUserView(u *account.User) userView {
	skills := u.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return userView{
		ID:          u.ID,
		Fullname:    u.Fullname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Profile: profileView{
			Bio:          u.Profile.Bio,
			Skills:       skills,
			ProfilePhoto: u.Profile.ProfilePhoto,
		},
	}
}

type companyView struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCompanyView(c *company.Company) companyView {
	return companyView{ID: c.ID, Name: c.Name, Logo: c.Logo, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

type jobView struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Company      any       `json:"company"`
	Applications any       `json:"applications"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

func toJobView(j *job.Job) jobView {
	ids := j.ApplicationIDs
	if ids == nil {
		ids = []string{}
	}
	return jobView{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.CompanyID,
		Applications: ids,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

type applicantView struct {
	ID          string      `json:"_id"`
	Fullname    string      `json:"fullname"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Profile     profileView `json:"profile"`
}

type applicationView struct {
	ID        string    `json:"_id"`
	Status    string    `json:"status"`
	Job       any       `json:"job"`
	Applicant any       `json:"applicant"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toApplicationView(a *application.Application) applicationView {
	v := applicationView{
		ID:        a.ID,
		Status:    string(a.Status),
		Job:       a.JobID,
		Applicant: a.ApplicantID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Job != nil {
		jv := jobView{ID: a.Job.ID, Title: a.Job.Title, Company: a.Job.CompanyID}
		if a.Job.Company != nil {
			jv.Company = companyView{ID: a.Job.Company.ID, Name: a.Job.Company.Name, Logo: a.Job.Company.Logo}
		}
		v.Job = jv
	}
	if a.Applicant != nil {
		skills := a.Applicant.Skills
		if skills == nil {
			skills = []string{}
		}
		v.Applicant = applicantView{
			ID:          a.Applicant.ID,
			Fullname:    a.Applicant.Fullname,
			Email:       a.Applicant.Email,
			PhoneNumber: a.Applicant.PhoneNumber,
			Profile: profileView{
				Bio:          a.Applicant.Bio,
				Skills:       skills,
				ProfilePhoto: a.Applicant.ProfilePhoto,
			},
		}
	}
	return v
}

func toApplicationViews(apps []*application.Application) []applicationView {
	out := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationView(a))
	}
	return out
}

func toJobApplicantsView(in *application.JobApplicants) jobView {
	v := jobView{
		ID:           in.Job.ID,
		Title:        in.Job.Title,
		Company:      in.Job.CompanyID,
		Applications: toApplicationViews(in.Applications),
		CreatedAt:    in.Job.CreatedAt,
		UpdatedAt:    in.Job.UpdatedAt,
	}
	if in.Company != nil {
		v.Company = toCompanyView(in.Company)
	}
	return v
}
