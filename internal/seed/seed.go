package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/classpoints/internal/app/models"
	appRepos "github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/config"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/auth"
)

// DefaultCatalog is the store catalog provisioned on first run
var DefaultCatalog = []appModels.StoreItem{
	{KeyName: "desk_red", Name: "Desk: Red Skin", Cost: 200, Type: appModels.ItemTypeSkin},
	{KeyName: "desk_blue", Name: "Desk: Blue Skin", Cost: 200, Type: appModels.ItemTypeSkin},
	{KeyName: "title_star", Name: "Title: Attendance King", Cost: 300, Type: appModels.ItemTypeTitle},
	{KeyName: "title_helper", Name: "Title: Helper", Cost: 150, Type: appModels.ItemTypeTitle},
}

// StudentName and StudentPassword give the default credentials of seeded student n (1-based)
func StudentName(n int) string     { return fmt.Sprintf("Student %d", n) }
func StudentPassword(n int) string { return fmt.Sprintf("pw%d", n) }

// CreateDefaultData provisions the roster, the catalog and the initial seating
// chart. Each part is only created when its table is empty, so it is safe to
// run on every start.
func CreateDefaultData(ctx context.Context, database *db.Database, cfg config.SeedConfig, hasher *auth.PasswordHasher, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(database)

	lgr.Info().Msg("Checking/Creating default data (Students/Items/Seating)...")
	var finalErr error // To collect potential errors without stopping the process

	if err := seedStudents(ctx, repos.StudentRepository, cfg, hasher, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedItems(ctx, repos.StoreRepository, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedSeating(ctx, database, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Finished creating default data with some errors.")
	} else {
		lgr.Info().Msg("Default data check/creation completed successfully.")
	}
	return finalErr
}

func seedStudents(ctx context.Context, repo *appRepos.StudentRepository, cfg config.SeedConfig, hasher *auth.PasswordHasher, lgr zerolog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		lgr.Debug().Int("students", n).Msg("Students present, skipping roster seed")
		return nil
	}

	lgr.Info().Int("count", cfg.StudentCount).Msg("Seeding students...")
	var errs error
	for i := 1; i <= cfg.StudentCount; i++ {
		hash, err := hasher.Hash(StudentPassword(i))
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		student := &appModels.Student{
			Name:         StudentName(i),
			PasswordHash: hash,
			Points:       rand.IntN(cfg.InitialPointsMax + 1),
		}
		if err := repo.Create(ctx, nil, student); err != nil && !errors.Is(err, apperrors.ErrStudentAlreadyExists) {
			lgr.Error().Err(err).Str("name", student.Name).Msg("Error creating student")
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func seedItems(ctx context.Context, repo *appRepos.StoreRepository, lgr zerolog.Logger) error {
	n, err := repo.CountItems(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		lgr.Debug().Int("items", n).Msg("Store items present, skipping catalog seed")
		return nil
	}

	lgr.Info().Int("count", len(DefaultCatalog)).Msg("Seeding store items...")
	var errs error
	for _, item := range DefaultCatalog {
		item := item
		if err := repo.CreateItem(ctx, nil, &item); err != nil && !errors.Is(err, apperrors.ErrItemAlreadyExists) {
			lgr.Error().Err(err).Str("itemKey", item.KeyName).Msg("Error creating store item")
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// seedSeating assigns the first students in ID order to the first seats
func seedSeating(ctx context.Context, database *db.Database, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	n, err := repos.SeatingRepository.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		lgr.Debug().Int("seats", n).Msg("Seating present, skipping seating seed")
		return nil
	}

	students, err := repos.StudentRepository.List(ctx)
	if err != nil {
		return err
	}

	assignments := make([]appModels.SeatAssignment, appModels.SeatCount)
	for i := range assignments {
		assignments[i].SeatIndex = i
		if i < len(students) {
			id := students[i].ID
			assignments[i].StudentID = &id
		}
	}

	lgr.Info().Int("occupied", min(len(students), appModels.SeatCount)).Msg("Seeding seating...")
	return database.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return repos.SeatingRepository.Replace(ctx, tx, assignments)
	})
}
