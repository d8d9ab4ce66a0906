package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

// Seed provisions users, courtrooms, sample cases and the statute corpus.
// It is a no-op when users already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users, err := seedUsers(db)
	if err != nil {
		return err
	}
	if err := seedCourtrooms(db); err != nil {
		return err
	}
	if err := seedCases(db, users); err != nil {
		return err
	}
	return SeedLaws(db)
}

func seedUsers(db *gorm.DB) ([]models.User, error) {
	specs := []struct {
		email, password, name string
		role                  models.Role
		bar                   string
	}{
		{"admin@court.gov.in", "admin123", "System Admin", models.RoleAdmin, ""},
		{"judge.sharma@court.gov.in", "judge123", "Hon. Justice R.K. Sharma", models.RoleJudge, ""},
		{"judge.mehta@court.gov.in", "judge123", "Hon. Justice P.S. Mehta", models.RoleJudge, ""},
		{"clerk.kumar@court.gov.in", "clerk123", "Anil Kumar", models.RoleClerk, ""},
		{"adv.singh@lawfirm.in", "lawyer123", "Adv. Rajesh Singh", models.RoleLawyer, "BAR/2010/1234"},
		{"adv.patel@lawfirm.in", "lawyer123", "Adv. Priya Patel", models.RoleLawyer, "BAR/2015/5678"},
	}

	users := make([]models.User, 0, len(specs))
	for _, s := range specs {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u := models.User{
			Email:        s.email,
			PasswordHash: string(hash),
			FullName:     s.name,
			Role:         s.role,
			BarNumber:    s.bar,
		}
		if err := db.Create(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func seedCourtrooms(db *gorm.DB) error {
	rooms := []models.Courtroom{
		{ID: "CR-1", Name: "Courtroom 1 - Main Hall", Capacity: 100, HasVideoConf: true, Floor: "Ground"},
		{ID: "CR-2", Name: "Courtroom 2 - Civil Division", Capacity: 60, HasVideoConf: true, Floor: "1st"},
		{ID: "CR-3", Name: "Courtroom 3 - Criminal Division", Capacity: 80, HasVideoConf: false, Floor: "1st"},
		{ID: "CR-4", Name: "Courtroom 4 - Family Court", Capacity: 40, HasVideoConf: true, Floor: "2nd"},
	}
	for i := range rooms {
		rooms[i].Status = models.CourtroomAvailable
		if err := db.Create(&rooms[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func seedCases(db *gorm.DB, users []models.User) error {
	var judges, lawyers []models.User
	for _, u := range users {
		switch u.Role {
		case models.RoleJudge:
			judges = append(judges, u)
		case models.RoleLawyer:
			lawyers = append(lawyers, u)
		}
	}

	samples := []struct {
		title      string
		caseType   models.CaseType
		status     models.CaseStatus
		priority   int
		urgency    models.Urgency
		petitioner string
		respondent string
		adj        int
		adjReason  *string
	}{
		{"State vs. Rohit Mehra", models.CaseTypeCriminal, models.CaseInProgress, 85, models.UrgencyHigh, "State of Maharashtra", "Rohit Mehra", 3, strPtr("Lawyer absent")},
		{"Sharma vs. Municipal Corp", models.CaseTypeCivil, models.CasePending, 45, models.UrgencyMedium, "Vikram Sharma", "Mumbai Municipal Corp", 1, strPtr("Documents pending")},
		{"Gupta Property Dispute", models.CaseTypeCivil, models.CaseScheduled, 60, models.UrgencyMedium, "Ramesh Gupta", "Suresh Gupta", 0, nil},
		{"Cyber Fraud Case #2024-CF-001", models.CaseTypeCyber, models.CasePending, 90, models.UrgencyCritical, "State", "Unknown (John Doe)", 0, nil},
		{"Motor Vehicle Accident Claim", models.CaseTypeMotorVehicle, models.CaseAdjourned, 55, models.UrgencyMedium, "Anjali Desai", "National Insurance Co.", 5, strPtr("Judge on leave")},
		{"Labour Dispute - Factory Workers Union", models.CaseTypeLabour, models.CaseInProgress, 70, models.UrgencyHigh, "Workers Union Local 42", "ABC Manufacturing Ltd.", 2, strPtr("Settlement negotiations")},
		{"Tax Evasion - Sunrise Enterprises", models.CaseTypeTax, models.CasePending, 75, models.UrgencyHigh, "IT Department", "Sunrise Enterprises Pvt. Ltd.", 0, nil},
		{"Family Custody - Kapoor vs Kapoor", models.CaseTypeFamily, models.CaseScheduled, 80, models.UrgencyHigh, "Neha Kapoor", "Amit Kapoor", 1, strPtr("Mediation attempt")},
	}

	year := time.Now().Year()
	for i, s := range samples {
		judge := judges[i%len(judges)]
		lawyer := lawyers[i%len(lawyers)]
		filing := time.Now().AddDate(0, 0, -30*(i+1)).Format("2006-01-02")
		cs := models.Case{
			CaseNumber:            fmt.Sprintf("CASE/%d/%04d", year, i+1),
			Title:                 s.title,
			CaseType:              s.caseType,
			Status:                s.status,
			PriorityScore:         s.priority,
			Urgency:               s.urgency,
			PresidingJudgeID:      &judge.ID,
			AssignedLawyerID:      &lawyer.ID,
			PetitionerName:        s.petitioner,
			RespondentName:        s.respondent,
			AdjournmentCount:      s.adj,
			LastAdjournmentReason: s.adjReason,
			FilingDate:            filing,
		}
		if err := db.Create(&cs).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedLaws loads the statute corpus. Exposed separately so tests can build
// a retrieval engine over the real records.
func SeedLaws(db *gorm.DB) error {
	laws := []models.Law{
		{ActName: "Indian Penal Code", Section: "Section 302", Title: "Punishment for Murder",
			Description: "Whoever commits murder shall be punished with death, or imprisonment for life, and shall also be liable to fine.",
			Penalty:     "Death or Life Imprisonment + Fine", Category: "Criminal",
			Keywords: "murder,kill,homicide,death", IsBailable: false, MaxImprisonment: "Life/Death", FineAmount: "As determined by court"},
		{ActName: "Indian Penal Code", Section: "Section 307", Title: "Attempt to Murder",
			Description: "Whoever does any act with such intention or knowledge, and under such circumstances that, if he by that act caused death, he would be guilty of murder, shall be punished.",
			Penalty:     "Up to 10 years + Fine", Category: "Criminal",
			Keywords: "attempt,murder,attack,intent to kill", IsBailable: false, MaxImprisonment: "10 years", FineAmount: "Variable"},
		{ActName: "Indian Penal Code", Section: "Section 376", Title: "Punishment for Rape",
			Description: "Rigorous imprisonment for not less than 10 years but may extend to life imprisonment and fine.",
			Penalty:     "Min 10 years to Life Imprisonment + Fine", Category: "Criminal",
			Keywords: "rape,sexual assault,sexual offence", IsBailable: false, MaxImprisonment: "10 years to Life", FineAmount: "As determined"},
		{ActName: "Indian Penal Code", Section: "Section 420", Title: "Cheating and Dishonesty",
			Description: "Whoever cheats and thereby dishonestly induces the person deceived to deliver any property to any person, or to make, alter or destroy the whole or any part of a valuable security.",
			Penalty:     "Up to 7 years + Fine", Category: "Criminal",
			Keywords: "cheating,fraud,dishonesty,scam", IsBailable: false, MaxImprisonment: "7 years", FineAmount: "Variable"},
		{ActName: "Indian Penal Code", Section: "Section 498A", Title: "Cruelty by Husband or Relatives",
			Description: "Whoever, being the husband or the relative of the husband of a woman, subjects such woman to cruelty shall be punished.",
			Penalty:     "Up to 3 years + Fine", Category: "Criminal",
			Keywords: "dowry,cruelty,domestic violence,husband", IsBailable: false, MaxImprisonment: "3 years", FineAmount: "Variable"},
		{ActName: "Motor Vehicles Act", Section: "Section 185", Title: "Driving Under Influence of Alcohol/Drugs",
			Description: "Whoever while driving a motor vehicle has in his blood alcohol exceeding 30 mg per 100 ml of blood shall be punishable for the first offence with imprisonment up to 6 months or fine up to Rs 10,000 or both.",
			Penalty:     "Up to 6 months imprisonment or Rs 10,000 fine or both", Category: "Motor Vehicle",
			Keywords: "drunk driving,alcohol,dui,drugs,driving", IsBailable: true, MaxImprisonment: "6 months", FineAmount: "Rs 10,000"},
		{ActName: "Motor Vehicles Act", Section: "Section 129", Title: "Helmet Compulsory for Two-Wheeler",
			Description: "Every person driving or riding on a two-wheeler motorcycle shall wear protective headgear (helmet) conforming to BIS standards.",
			Penalty:     "Fine of Rs 1,000 and disqualification for 3 months", Category: "Motor Vehicle",
			Keywords: "helmet,two wheeler,motorcycle,bike,headgear", IsBailable: true, MaxImprisonment: "None", FineAmount: "Rs 1,000"},
		{ActName: "Motor Vehicles Act", Section: "Section 177", Title: "General Traffic Offences",
			Description: "Whoever contravenes any provision of this Act or of any rule, regulation or notification made thereunder shall be punishable with fine which may extend to Rs 500 for first offence and Rs 1,500 for second or subsequent offence.",
			Penalty:     "Rs 500 first offence, Rs 1,500 repeat", Category: "Motor Vehicle",
			Keywords: "traffic,violation,offence,fine,rules", IsBailable: true, MaxImprisonment: "None", FineAmount: "Rs 500-1500"},
		{ActName: "Information Technology Act", Section: "Section 66", Title: "Computer Related Offences (Hacking)",
			Description: "If any person dishonestly or fraudulently does any act referred to in section 43, he shall be punishable with imprisonment for a term which may extend to three years or with fine which may extend to five lakh rupees or both.",
			Penalty:     "Up to 3 years or Rs 5 lakh fine or both", Category: "Cyber",
			Keywords: "hacking,computer,cyber crime,unauthorized access", IsBailable: true, MaxImprisonment: "3 years", FineAmount: "Rs 5,00,000"},
		{ActName: "Information Technology Act", Section: "Section 67", Title: "Publishing Obscene Material Online",
			Description: "Whoever publishes or transmits any material which is lascivious or appeals to prurient interest electronically shall be punished.",
			Penalty:     "First offence: 3 years + Rs 5 lakh. Second: 5 years + Rs 10 lakh", Category: "Cyber",
			Keywords: "obscene,pornography,online,publish,electronic", IsBailable: true, MaxImprisonment: "3-5 years", FineAmount: "Rs 5-10 lakh"},
		{ActName: "Constitution of India", Section: "Article 21", Title: "Right to Life and Personal Liberty",
			Description: "No person shall be deprived of his life or personal liberty except according to procedure established by law. This is a fundamental right.",
			Penalty:     "N/A - Fundamental Right", Category: "Constitutional",
			Keywords: "life,liberty,fundamental right,freedom,personal liberty", IsBailable: true, MaxImprisonment: "N/A", FineAmount: "N/A"},
		{ActName: "Constitution of India", Section: "Article 14", Title: "Right to Equality",
			Description: "The State shall not deny to any person equality before the law or the equal protection of the laws within the territory of India.",
			Penalty:     "N/A - Fundamental Right", Category: "Constitutional",
			Keywords: "equality,discrimination,equal protection,fundamental right", IsBailable: true, MaxImprisonment: "N/A", FineAmount: "N/A"},
		{ActName: "Consumer Protection Act 2019", Section: "Section 2(7)", Title: "Definition of Consumer",
			Description: "Consumer means any person who buys any goods or hires/avails any service for consideration which has been paid or promised.",
			Penalty:     "Compensation as per complaint", Category: "Civil",
			Keywords: "consumer,buyer,goods,services,complaint,protection", IsBailable: true, MaxImprisonment: "N/A", FineAmount: "As per claim"},
		{ActName: "Indian Contract Act", Section: "Section 73", Title: "Compensation for Breach of Contract",
			Description: "When a contract has been broken, the party who suffers by such breach is entitled to receive compensation for any loss or damage caused.",
			Penalty:     "Compensation/Damages", Category: "Civil",
			Keywords: "contract,breach,compensation,damages,agreement", IsBailable: true, MaxImprisonment: "N/A", FineAmount: "Damages"},
		{ActName: "Bharatiya Nyaya Sanhita 2023", Section: "Section 103", Title: "Murder (New Code)",
			Description: "Whoever causes death of another person with intention shall be punished with death or imprisonment for life and also liable to fine. This replaces IPC Section 302 under the new criminal code.",
			Penalty:     "Death or Life Imprisonment + Fine", Category: "Criminal",
			Keywords: "murder,bns,new code,kill,death,bharatiya nyaya", IsBailable: false, MaxImprisonment: "Life/Death", FineAmount: "As determined"},
	}

	for i := range laws {
		if err := db.Create(&laws[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
