package domain

import "time"

// UserDetail is the per-user profile projection the detail page renders. The
// shape mirrors the upstream registry's profile payload so local-fallback
// and upstream responses are interchangeable to the UI.
type UserDetail struct {
	ID               string  `json:"id"`
	ProfessionalType string  `json:"professionalType"`
	Profile          Profile `json:"profile"`
}

type Profile struct {
	UserID                 string                 `json:"userId"`
	Fullname               string                 `json:"fullname"`
	DateOfBirth            string                 `json:"dateOfBirth"`
	PersonalNationality    string                 `json:"personalNationality"`
	PersonalPhoto          string                 `json:"personalPhoto"`
	Gender                 string                 `json:"gender"`
	PhoneNumber            string                 `json:"phoneNumber"`
	EmailPrimary           string                 `json:"emailPrimary"`
	CreatedAt              time.Time              `json:"createdAt"`
	UpdatedAt              time.Time              `json:"updatedAt,omitzero"`
	PermanentAddress       Address                `json:"permanentAddress"`
	AcademicQualifications AcademicQualifications `json:"academicQualifications"`
	RegulatoryDetails      RegulatoryDetails      `json:"regulatoryDetails"`
	PreviousExperience     []string               `json:"previousExperience"`
	ResearchInterests      []string               `json:"researchInterests"`
	PublicationDetails     []string               `json:"publicationDetails"`
	ConsentInfoTrue        bool                   `json:"consent_infoTrueAndCorrect"`
	ConsentDataUse         bool                   `json:"consent_authorizeDataUse"`
	ConsentNotifications   bool                   `json:"consent_agreeToNotifications"`
}

type AcademicQualifications struct {
	UG AcademicRecord  `json:"ug"`
	PG *AcademicRecord `json:"pg,omitempty"`
}

type AcademicRecord struct {
	Qualification string `json:"qualification"`
	College       string `json:"college"`
	YearOfPassing int    `json:"yearOfPassing"`
}

type RegulatoryDetails struct {
	RegulatoryAyushRegNo string `json:"regulatoryAyushRegNo"`
	CouncilName          string `json:"councilName"`
}

// ProfessionalType buckets: a PG qualification marks a medical professional.
const (
	ProfessionalMedical    = "medical_prof"
	ProfessionalNonMedical = "non_medical"
)

// Detail builds the profile projection from a full local record.
func (u User) Detail() UserDetail {
	professionalType := ProfessionalNonMedical
	if u.Qualifications.PG != nil {
		professionalType = ProfessionalMedical
	}
	var pg *AcademicRecord
	if u.Qualifications.PG != nil {
		pg = &AcademicRecord{
			Qualification: u.Qualifications.PG.Degree,
			College:       u.Qualifications.PG.College,
			YearOfPassing: u.Qualifications.PG.YearOfPassing,
		}
	}
	return UserDetail{
		ID:               u.ID,
		ProfessionalType: professionalType,
		Profile: Profile{
			UserID:              u.ID,
			Fullname:            u.Personal.FullName,
			DateOfBirth:         u.Personal.DOB,
			PersonalNationality: u.Personal.Nationality,
			PersonalPhoto:       u.Personal.PhotoURL,
			Gender:              u.Personal.Gender,
			PhoneNumber:         u.Contact.MobileNumber,
			EmailPrimary:        u.Contact.EmailPrimary,
			CreatedAt:           u.CreatedAt,
			UpdatedAt:           u.UpdatedAt,
			PermanentAddress:    u.Contact.PermanentAddress,
			AcademicQualifications: AcademicQualifications{
				UG: AcademicRecord{
					Qualification: u.Qualifications.UG.Degree,
					College:       u.Qualifications.UG.College,
					YearOfPassing: u.Qualifications.UG.YearOfPassing,
				},
				PG: pg,
			},
			RegulatoryDetails: RegulatoryDetails{
				RegulatoryAyushRegNo: u.Regulatory.AyushCouncilRegNo,
				CouncilName:          u.Regulatory.CouncilName,
			},
			PreviousExperience:   []string{},
			ResearchInterests:    []string{},
			PublicationDetails:   []string{},
			ConsentInfoTrue:      true,
			ConsentDataUse:       true,
			ConsentNotifications: true,
		},
	}
}
