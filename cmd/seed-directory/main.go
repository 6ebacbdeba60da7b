// Command seed-directory loads the personnel roster and initializes the core
// member and secretariat registries. It is idempotent: already-seeded
// personnel rows are skipped, and a registry that already has members is left
// untouched.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/directory"
	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/membership"
	"github.com/mockingjay-project/mockingjay/internal/app"
	"github.com/mockingjay-project/mockingjay/internal/config"
	"github.com/mockingjay-project/mockingjay/internal/domain"
	membershipsvc "github.com/mockingjay-project/mockingjay/internal/service/membership"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("seed-directory starting", slog.String("version", app.BuildVersion()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	directoryRepo := directory.New(pool)
	membershipRepo := membership.New(pool)
	svc := membershipsvc.NewService(logger, membershipRepo, directoryRepo)

	inserted, err := directoryRepo.InsertSeed(ctx, roster())
	if err != nil {
		logger.Error("seed personnel", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("personnel seeded", slog.Int64("inserted", inserted))

	core, err := svc.Initialize(ctx, domain.RegistryCoreMembers, coreMemberPerNums)
	if err != nil {
		logger.Error("initialize core members", slog.String("error", err.Error()))
		os.Exit(1)
	}
	secretariat, err := svc.Initialize(ctx, domain.RegistrySecretariat, secretariatPerNums)
	if err != nil {
		logger.Error("initialize secretariat", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("registries initialized",
		slog.Int("core_members", core),
		slog.Int("secretariat", secretariat),
	)
}

var coreMemberPerNums = []int{
	32788, 81316, 95169, 28811, 93492, 41870, 59598, 48246,
	87829, 45387, 14902, 10887,
	25616, 30749, 8135, 18642, 71433, 93449, 10584, 32893, 69129, 81044, 48928,
}

var secretariatPerNums = []int{54546, 70880, 96465, 48140, 49091}

// roster returns the static personnel directory. Heads of department
// (president, board, chiefs) are classified HOD; directors are Permanent;
// everyone else carries no employment classification.
func roster() []domain.Person {
	hod := domain.EmploymentRoleHOD
	perm := domain.EmploymentRolePermanent
	none := domain.EmploymentRoleNone

	return []domain.Person{
		{PerNum: 32788, Name: "Diego Singleton", Designation: "President", EmploymentRole: hod},
		{PerNum: 81316, Name: "Iyana Sweeney", Designation: "BoardMember 1", EmploymentRole: hod},
		{PerNum: 95169, Name: "Jacey Douglas", Designation: "BoardMember 2", EmploymentRole: hod},
		{PerNum: 28811, Name: "Fisher Taylor", Designation: "BoardMember 3", EmploymentRole: hod},
		{PerNum: 93492, Name: "Serena Webster", Designation: "BoardMember 4", EmploymentRole: hod},
		{PerNum: 41870, Name: "Graham Shields", Designation: "BoardMember 5", EmploymentRole: hod},
		{PerNum: 59598, Name: "Jonathon Baxter", Designation: "BoardMember 6", EmploymentRole: hod},
		{PerNum: 48246, Name: "Brylee Mcdaniel", Designation: "BoardMember 7", EmploymentRole: hod},
		{PerNum: 87829, Name: "Kadence Donaldson", Designation: "Chief Accountant", EmploymentRole: hod},
		{PerNum: 45387, Name: "Emilia Cooper", Designation: "Chief Technology", EmploymentRole: hod},
		{PerNum: 14902, Name: "Demetrius Reese", Designation: "Chief Corporate", EmploymentRole: hod},
		{PerNum: 10887, Name: "Bryson Gilbert", Designation: "Chief HR", EmploymentRole: hod},
		{PerNum: 25616, Name: "Yosef Love", Designation: "Director Accountant 1", EmploymentRole: perm},
		{PerNum: 30749, Name: "Sonny Figueroa", Designation: "Director Accountant 2", EmploymentRole: perm},
		{PerNum: 8135, Name: "Alicia Kirk", Designation: "Director Accountant 3", EmploymentRole: perm},
		{PerNum: 18642, Name: "Alicia Griffin", Designation: "Director Technology 1", EmploymentRole: perm},
		{PerNum: 71433, Name: "Jackson Mcintosh", Designation: "Director Technology 2", EmploymentRole: perm},
		{PerNum: 93449, Name: "Messiah Joseph", Designation: "Director Technology 3", EmploymentRole: perm},
		{PerNum: 10584, Name: "Bianca Moran", Designation: "Director Technology 4", EmploymentRole: perm},
		{PerNum: 32893, Name: "Presley Franklin", Designation: "Director Corporate 1", EmploymentRole: perm},
		{PerNum: 69129, Name: "Marlon Fields", Designation: "Director Corporate 2", EmploymentRole: perm},
		{PerNum: 81044, Name: "Melissa Moon", Designation: "Director HR 1", EmploymentRole: perm},
		{PerNum: 48928, Name: "Kiara Bates", Designation: "Director HR 2", EmploymentRole: perm},
		{PerNum: 90599, Name: "Kendall Choi", Designation: "Head Gardening", EmploymentRole: none},
		{PerNum: 36832, Name: "Oswaldo Bass", Designation: "Head Landscape", EmploymentRole: none},
		{PerNum: 2223, Name: "Javion Mayo", Designation: "Head Manufacturing", EmploymentRole: none},
		{PerNum: 12587, Name: "Katrina Kemp", Designation: "Head Nurse", EmploymentRole: none},
		{PerNum: 74729, Name: "Aurora Branch", Designation: "Head Sales", EmploymentRole: none},
		{PerNum: 41212, Name: "Rex Shaffer", Designation: "Head Marketing", EmploymentRole: none},
		{PerNum: 97132, Name: "Brett Roach", Designation: "Head Communications", EmploymentRole: none},
		{PerNum: 92664, Name: "Nico Hardy", Designation: "Head Transport", EmploymentRole: none},
		{PerNum: 54546, Name: "Layton Rowland", Designation: "Manager Technology 1", EmploymentRole: none},
		{PerNum: 54011, Name: "Maximo Huffman", Designation: "Manager Technology 2", EmploymentRole: none},
		{PerNum: 46528, Name: "Aidan Andrews", Designation: "Manager Technology 3", EmploymentRole: none},
		{PerNum: 96465, Name: "Jamison Rangel", Designation: "Manager Technology 4", EmploymentRole: none},
		{PerNum: 17206, Name: "Haleigh Schroeder", Designation: "Manager Sales 1", EmploymentRole: none},
		{PerNum: 91225, Name: "Emily Murray", Designation: "Manager Sales 2", EmploymentRole: none},
		{PerNum: 70880, Name: "Ashanti Cooley", Designation: "Manager Nurse", EmploymentRole: none},
		{PerNum: 44049, Name: "Brittany Giles", Designation: "Manager Marketing", EmploymentRole: none},
		{PerNum: 87176, Name: "Fisher Dickerson", Designation: "Manager Coporate", EmploymentRole: none},
		{PerNum: 74612, Name: "Monica Guerrero", Designation: "Techology Engineer", EmploymentRole: none},
		{PerNum: 49091, Name: "Imani Owen", Designation: "Accountant", EmploymentRole: none},
		{PerNum: 75790, Name: "Dylan Moran", Designation: "Nurse", EmploymentRole: none},
		{PerNum: 48140, Name: "Yazmin Nicholson", Designation: "Doctor", EmploymentRole: none},
		{PerNum: 98437, Name: "Lawson Sloan", Designation: "Policeman", EmploymentRole: none},
		{PerNum: 59511, Name: "Camila Collier", Designation: "Salesman", EmploymentRole: none},
		{PerNum: 56752, Name: "Pedro Heath", Designation: "chauffeur", EmploymentRole: none},
		{PerNum: 34388, Name: "Kadence Wheeler", Designation: "Reporter", EmploymentRole: none},
	}
}
