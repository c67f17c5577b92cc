package services

import (
	"strings"
	"testing"

	"github.com/elidrum/Nutrease/config"
	"github.com/elidrum/Nutrease/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// every pooled connection would otherwise see its own empty in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	return db
}

const testDataset = `food_name,unit,grams,lactose,sorbitol,gluten
Milk,MILLILITER,1,0.05,0,0
Bread,SLICE,50,0,0,2.5
Apple,PIECE,180,0,0.9,0
Banana,PIECE,120,0,1.2,0
Cracker,PIECE,,0,0,1.5
Caffè Latte,GLASS,200,8,0,0
Pea,GRAM,1,0,0.01,0
Pear,PIECE,160,0,1.1,0
Peas,GRAM,1,0,0.02,0
`

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := ReadCatalog(strings.NewReader(testDataset))
	require.NoError(t, err)
	return cat
}

func seedPatient(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", Name: "Pat", Surname: "Test", Role: models.RolePatient}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedSpecialist(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{
		Email: email, Password: "x", Name: "Spec", Surname: "Test",
		Role: models.RoleSpecialist, Category: models.CategoryNutritionist,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}
