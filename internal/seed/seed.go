// Package seed deterministically generates the practitioner dataset used for
// local fallback and for tests. Field selection is modulo-indexing into fixed
// catalogs, not a seeded PRNG: the same index and base time always produce a
// structurally identical record, which keeps fixtures reproducible.
package seed

import (
	"fmt"
	"strings"
	"time"

	"ayushdesk/internal/domain"
)

// Count is the fixed size of the generated dataset. Users carry ids
// "user-1" through "user-36".
const Count = 36

const day = 24 * time.Hour

var firstNames = []string{
	"Aarav", "Diya", "Vihaan", "Ishan", "Myra", "Kavya", "Rohan", "Anaya",
	"Arjun", "Ira", "Kabir", "Meera", "Dev", "Riya", "Shaan", "Tara",
	"Yash", "Zara", "Nikhil", "Saanvi",
}

var lastNames = []string{
	"Sharma", "Patel", "Iyer", "Nair", "Reddy", "Mehta", "Kapoor", "Chopra",
	"Bose", "Desai", "Kulkarni", "Joshi", "Verma", "Singh", "Gupta", "Khan",
	"Naidu", "Pillai", "Dutta", "Gokhale",
}

// states keeps a fixed iteration order; the generator indexes into it.
var states = []string{
	"Maharashtra", "Gujarat", "Karnataka", "TamilNadu", "Kerala",
	"Delhi", "Rajasthan", "Punjab", "Telangana", "WestBengal",
}

var citiesByState = map[string][]string{
	"Maharashtra": {"Mumbai", "Pune", "Nagpur"},
	"Gujarat":     {"Ahmedabad", "Surat", "Vadodara"},
	"Karnataka":   {"Bengaluru", "Mysuru", "Mangaluru"},
	"TamilNadu":   {"Chennai", "Coimbatore", "Madurai"},
	"Kerala":      {"Thiruvananthapuram", "Kochi", "Kozhikode"},
	"Delhi":       {"New Delhi", "Dwarka", "Saket"},
	"Rajasthan":   {"Jaipur", "Udaipur", "Jodhpur"},
	"Punjab":      {"Amritsar", "Chandigarh", "Ludhiana"},
	"Telangana":   {"Hyderabad", "Warangal", "Karimnagar"},
	"WestBengal":  {"Kolkata", "Siliguri", "Durgapur"},
}

var statuses = []domain.Status{
	domain.StatusPending, domain.StatusUnderReview, domain.StatusVerified, domain.StatusRejected,
}

var documentTypes = []domain.DocumentType{
	domain.DocTypePhoto, domain.DocTypeIDProof, domain.DocTypeAddressProof,
	domain.DocTypeUGDegree, domain.DocTypePGDegree, domain.DocTypePhDCert,
	domain.DocTypeCouncilReg, domain.DocTypeOther,
}

var documentStatuses = []domain.DocumentStatus{
	domain.DocUnverified, domain.DocVerified, domain.DocRejected,
}

var (
	ugDegrees       = []string{"BAMS", "BHMS", "BUMS", "BSMS", "BNYS"}
	pgDegrees       = []string{"MD", "MS", "Other AYUSH PG"}
	genders         = []string{"Male", "Female", "Other"}
	maritalStatuses = []string{"Single", "Married", "Divorced"}
)

var certificationsCatalog = []string{
	"Ayurvedic Nutrition", "Panchakarma Therapy", "Yoga Therapy",
	"Clinical Herbalism", "Wellness Coaching", "Holistic Counseling",
}

var loremNotes = []string{
	"Verified against original documents.",
	"Pending council confirmation.",
	"Need clearer scan of address proof.",
	"Audit trail reviewed and complete.",
	"User provided updated phone number.",
	"Follow-up call scheduled with verifier.",
}

var avatars = []string{
	"https://i.pravatar.cc/150?img=5",
	"https://i.pravatar.cc/150?img=12",
	"https://i.pravatar.cc/150?img=22",
	"https://i.pravatar.cc/150?img=32",
	"https://i.pravatar.cc/150?img=45",
	"https://i.pravatar.cc/150?img=51",
	"https://i.pravatar.cc/150?img=60",
	"https://i.pravatar.cc/150?img=68",
}

var sampleDocURLs = map[domain.DocumentType]string{
	domain.DocTypePhoto:        "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=600&q=80",
	domain.DocTypeIDProof:      "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=600&q=80",
	domain.DocTypeAddressProof: "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?auto=format&fit=crop&w=600&q=80",
	domain.DocTypeUGDegree:     "https://images.unsplash.com/photo-1509062522246-3755977927d7?auto=format&fit=crop&w=600&q=80",
	domain.DocTypeCouncilReg:   "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf",
}

// fallbackDocURLs matches the sample-document catalog order, indexed when a
// type has no dedicated URL.
var fallbackDocURLs = []string{
	sampleDocURLs[domain.DocTypePhoto],
	sampleDocURLs[domain.DocTypeIDProof],
	sampleDocURLs[domain.DocTypeAddressProof],
	sampleDocURLs[domain.DocTypeUGDegree],
	sampleDocURLs[domain.DocTypeCouncilReg],
}

var auditActors = []string{"system", "verifier.ayush", "superadmin", "audit.bot"}

var (
	permanentStreets      = []string{"MG Road", "Church Street", "Ring Road", "Lake View"}
	correspondenceStreets = []string{"Residency Road", "Hill View", "Garden Street"}
	ugColleges            = []string{"National AYUSH College", "Herbal Sciences Institute", "Ayurveda University"}
	pgSpecializations     = []string{"Kayachikitsa", "Panchakarma", "Dravyaguna", "Rachana Sharir"}
	pgColleges            = []string{"Institute of Advanced AYUSH", "Global Ayurvedic Academy"}
	phdTopics             = []string{"Medicinal Herbs", "Yoga Therapy", "Holistic Medicine"}
	phdInstitutes         = []string{"Central AYUSH Research Institute", "Global Wellness University"}
	certIssuers           = []string{"AYUSH Council", "Wellness Board", "Holistic Assoc."}
	councils              = []string{"Central Council of Indian Medicine", "State AYUSH Council", "AYUSH National Board"}
)

func pick(catalog []string, i int) string {
	return catalog[i%len(catalog)]
}

// Users generates the full dataset relative to the given base time. The base
// anchors every derived timestamp, so the same base yields the same dataset.
func Users(base time.Time) []domain.User {
	users := make([]domain.User, 0, Count)
	for i := 1; i <= Count; i++ {
		users = append(users, NewUser(i, base))
	}
	return users
}

// NewUser generates the user at the given 1-based index.
func NewUser(index int, base time.Time) domain.User {
	firstName := pick(firstNames, index)
	lastName := pick(lastNames, index*7)
	fullName := firstName + " " + lastName
	state := states[index%len(states)]
	city := pick(citiesByState[state], index*3)
	createdAt := base.Add(-time.Duration(index) * 3 * day)

	docCount := 3 + index%5
	documents := make([]domain.Document, 0, docCount)
	for d := 0; d < docCount; d++ {
		documents = append(documents, newDocument(index, d, documentTypes[(index+d)%len(documentTypes)], createdAt))
	}

	var pg *domain.PGQualification
	if index%3 == 0 {
		pg = &domain.PGQualification{
			Degree:         pick(pgDegrees, index*4),
			Specialization: pick(pgSpecializations, index+2),
			College:        pick(pgColleges, index) + " " + state,
			YearOfPassing:  2012 + index%8,
		}
	}
	var phd *domain.PhD
	if index%7 == 0 {
		phd = &domain.PhD{
			Title:     "Research on " + pick(phdTopics, index),
			Institute: pick(phdInstitutes, index),
			Year:      2018 + index%4,
		}
	}
	certs := make([]domain.Certification, 0, index%4)
	for c := 0; c < index%4; c++ {
		certs = append(certs, domain.Certification{
			Name:   pick(certificationsCatalog, index+c),
			Issuer: pick(certIssuers, c),
			Year:   2016 + (index+c)%6,
		})
	}

	return domain.User{
		ID:        fmt.Sprintf("user-%d", index),
		CreatedAt: createdAt,
		Status:    statuses[(index*5)%len(statuses)],
		Personal: domain.Personal{
			FullName:      fullName,
			Gender:        pick(genders, index),
			DOB:           fmt.Sprintf("%04d-%02d-%02d", 1985+index%10, (index*3)%12+1, (index*7)%28+1),
			ParentsName:   pick(firstNames, index+4) + " " + pick(lastNames, index+2),
			MaritalStatus: pick(maritalStatuses, index),
			Nationality:   "Indian",
			PhotoURL:      pick(avatars, index),
		},
		Contact: domain.Contact{
			PermanentAddress: domain.Address{
				HouseNo: fmt.Sprintf("%d", 100+index),
				Street:  fmt.Sprintf("%s %d", pick(permanentStreets, index), index),
				City:    city,
				State:   state,
				PinCode: fmt.Sprintf("%d", 560000+index),
			},
			CorrespondenceAddress: domain.Address{
				HouseNo: fmt.Sprintf("%d", 120+index),
				Street:  fmt.Sprintf("%s %d", pick(correspondenceStreets, index), index),
				City:    city,
				State:   state,
				PinCode: fmt.Sprintf("%d", 560100+index),
			},
			MobileNumber:     fmt.Sprintf("+91-98%08d", index*37+1234),
			AltContactNumber: altContact(index),
			EmailPrimary:     strings.ToLower(firstName) + "." + strings.ToLower(lastName) + "@ayushmail.com",
			EmailAlternate:   altEmail(index, firstName, lastName),
		},
		Qualifications: domain.Qualifications{
			UG: domain.UGQualification{
				Degree:        pick(ugDegrees, index*2),
				College:       pick(ugColleges, index) + " " + city,
				YearOfPassing: 2005 + index%10,
			},
			PG:             pg,
			PhD:            phd,
			Certifications: certs,
		},
		Regulatory: domain.Regulatory{
			AyushCouncilRegNo:  fmt.Sprintf("AYUSH-%d", 100000+index*97),
			CouncilName:        pick(councils, index) + " " + state,
			DateOfRegistration: base.Add(-time.Duration(index) * 120 * day),
			Validity:           base.Add(time.Duration(365*5-index*20) * day),
		},
		Documents: documents,
		Audit:     newAuditTrail(createdAt, fullName),
	}
}

func newDocument(userIndex, docIndex int, docType domain.DocumentType, createdAt time.Time) domain.Document {
	status := documentStatuses[(userIndex+docIndex)%len(documentStatuses)]
	url, ok := sampleDocURLs[docType]
	if !ok {
		url = fallbackDocURLs[docIndex%len(fallbackDocURLs)]
	}
	notes := ""
	if status == domain.DocRejected {
		notes = pick(loremNotes, docIndex)
	}
	return domain.Document{
		ID:             fmt.Sprintf("doc-%d-%d", userIndex, docIndex),
		Type:           docType,
		Name:           fmt.Sprintf("%s Document %d", strings.Replace(string(docType), "_", " ", 1), docIndex+1),
		URL:            url,
		UploadedAt:     createdAt.Add(time.Duration(docIndex) * day),
		VerifiedStatus: status,
		Notes:          notes,
	}
}

// newAuditTrail returns the initial trail oldest-first; the store keeps the
// convention that later entries are prepended on top of these.
func newAuditTrail(createdAt time.Time, fullName string) []domain.AuditEntry {
	return []domain.AuditEntry{
		{
			At:      createdAt,
			Actor:   "system",
			Action:  domain.AuditUserCreated,
			Details: fmt.Sprintf("User record for %s created.", fullName),
		},
		{
			At:      createdAt.Add(3 * day),
			Actor:   "verifier.ayush",
			Action:  domain.AuditStatusUpdated,
			Details: "Initial review completed.",
		},
		{
			At:      createdAt.Add(5 * day),
			Actor:   pick(auditActors, len(fullName)),
			Action:  domain.AuditNoteAdded,
			Details: pick(loremNotes, len(fullName)),
		},
	}
}

func altContact(index int) string {
	if index%4 != 0 {
		return ""
	}
	return fmt.Sprintf("+91-99%08d", index*41+4321)
}

func altEmail(index int, firstName, lastName string) string {
	if index%5 != 0 {
		return ""
	}
	return strings.ToLower(firstName) + "_" + strings.ToLower(lastName) + "@altmail.com"
}
