package postgres_test

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/filter"
	"github.com/xy-planning-network/enums/logger"
	"github.com/xy-planning-network/enums/postgres"
)

type preference struct {
	ID           int64
	UserID       int64
	EnabledTypes pq.Int64Array `gorm:"type:integer[]"`
}

func (preference) TableName() string { return "notification_preferences" }

type DBTestSuite struct {
	suite.Suite

	db *postgres.DB
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(DBTestSuite))
}

func (suite *DBTestSuite) SetupSuite() {
	err := godotenv.Load("../.env")
	var pe *fs.PathError
	if err != nil && !errors.As(err, &pe) {
		suite.Require().FailNow(err.Error())
	}

	cfg := postgres.NewConfig(enums.Testing)
	if !cfg.Configured() {
		suite.T().Skip("DATABASE_TEST_NAME or DATABASE_TEST_URL not set")
	}

	l := logger.New(logger.WithLevel(logger.LogLevelWarn))
	suite.db, err = postgres.Connect(cfg, l)
	suite.Require().Nil(err)

	b, err := os.ReadFile("testdata/schema.sql")
	suite.Require().Nil(err)

	err = suite.db.Exec(string(b))
	suite.Require().ErrorIs(err, enums.ErrNotFound)
}

func (suite *DBTestSuite) TearDownTest() {
	suite.Require().Nil(postgres.WipeDB(suite.db.DB(), "public"))
}

func (suite *DBTestSuite) insertTickets() []ticket {
	tickets := []ticket{
		{Status: 0, Priority: 0},
		{Status: 0, Priority: 2},
		{Status: 1, Priority: 3},
		{Status: 2, Priority: 4},
		{Status: 3, Priority: 1},
	}
	suite.Require().Nil(suite.db.Create(&tickets))

	return tickets
}

func (suite *DBTestSuite) TestWhereIn() {
	// Arrange
	suite.insertTickets()

	// Act
	var actual []ticket
	err := suite.db.Where(filter.In("priority", 2, 3, 4)).Order("priority").Find(&actual)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Len(actual, 3)
	for i, p := range []int{2, 3, 4} {
		suite.Require().Equal(p, actual[i].Priority)
	}
}

func (suite *DBTestSuite) TestWhereNot() {
	// Arrange
	suite.insertTickets()

	// Act
	count, err := suite.db.Model(new(ticket)).Where(filter.Not(filter.In("status", 2, 3))).Count()

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(int64(3), count)
}

func (suite *DBTestSuite) TestWhereIsNull() {
	// Arrange
	tickets := suite.insertTickets()
	err := suite.db.Model(new(ticket)).Where("id = ?", tickets[0].ID).Update(postgres.Updates{"assigned_to_id": 7})
	suite.Require().Nil(err)

	// Act
	count, err := suite.db.Model(new(ticket)).Where(filter.IsNull("assigned_to_id")).Count()

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(int64(4), count)
}

func (suite *DBTestSuite) TestContains() {
	// Arrange
	prefs := []preference{
		{UserID: 1, EnabledTypes: pq.Int64Array{0, 3}},
		{UserID: 2, EnabledTypes: pq.Int64Array{1}},
		{UserID: 3, EnabledTypes: pq.Int64Array{}},
	}
	suite.Require().Nil(suite.db.Create(&prefs))

	// Act
	var actual []preference
	err := suite.db.Where(filter.Contains("enabled_types", 3)).Find(&actual)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Len(actual, 1)
	suite.Require().Equal(int64(1), actual[0].UserID)

	// Act
	exists, err := suite.db.Model(new(preference)).Where(filter.Contains("enabled_types", 2)).Exists()

	// Assert
	suite.Require().Nil(err)
	suite.Require().False(exists)
}

func (suite *DBTestSuite) TestRows() {
	// Arrange
	suite.insertTickets()
	priority := enums.MustDefine("priority", []enums.Label{
		{Name: "low", Code: 0},
		{Name: "medium", Code: 1},
		{Name: "high", Code: 2},
		{Name: "urgent", Code: 3},
		{Name: "critical", Code: 4},
	})
	f := &enums.Field{Column: "priority", Definition: priority}

	// Act
	rows, err := suite.db.Table("support_tickets").Order("id").Rows()

	// Assert
	suite.Require().Nil(err)
	suite.Require().Len(rows, 5)

	label, err := f.Get(rows[3])
	suite.Require().Nil(err)
	suite.Require().Equal("critical", label)
}

func (suite *DBTestSuite) TestUpdateWithField() {
	// Arrange
	tickets := suite.insertTickets()
	status := enums.MustDefine("ticket_status", []enums.Label{
		{Name: "open", Code: 0},
		{Name: "in_progress", Code: 1},
		{Name: "resolved", Code: 2},
		{Name: "closed", Code: 3},
	})
	f := &enums.Field{Column: "status", Definition: status}
	u := postgres.Updates{}
	suite.Require().Nil(f.Set(u, "resolved"))

	// Act
	err := suite.db.Model(new(ticket)).Where("id = ?", tickets[0].ID).Update(u)

	// Assert
	suite.Require().Nil(err)

	var actual ticket
	suite.Require().Nil(suite.db.Where("id = ?", tickets[0].ID).First(&actual))
	suite.Require().Equal(2, actual.Status)
}

func (suite *DBTestSuite) TestUpdateCheckViolation() {
	// Arrange
	tickets := suite.insertTickets()

	// Act
	err := suite.db.Model(new(ticket)).Where("id = ?", tickets[0].ID).Update(postgres.Updates{"priority": 9})

	// Assert
	suite.Require().ErrorIs(err, enums.ErrNotValid)
}

func (suite *DBTestSuite) TestCreateUniqueViolation() {
	// Arrange
	suite.Require().Nil(suite.db.Create(&preference{UserID: 1, EnabledTypes: pq.Int64Array{}}))

	// Act
	err := suite.db.Create(&preference{UserID: 1, EnabledTypes: pq.Int64Array{}})

	// Assert
	suite.Require().ErrorIs(err, enums.ErrExists)
}

func (suite *DBTestSuite) TestTransaction() {
	// Arrange
	rollback := errors.New("rollback")

	// Act
	err := suite.db.Transaction(func(tx *postgres.DB) error {
		if err := tx.Create(&ticket{Status: 0, Priority: 1}); err != nil {
			return err
		}

		return rollback
	})

	// Assert
	suite.Require().ErrorIs(err, rollback)

	count, err := suite.db.Model(new(ticket)).Count()
	suite.Require().Nil(err)
	suite.Require().Zero(count)
}

func (suite *DBTestSuite) TestFirstNotFound() {
	// Act
	var actual ticket
	err := suite.db.Where(filter.Eq("status", 3)).First(&actual)

	// Assert
	suite.Require().ErrorIs(err, enums.ErrNotFound)
}
