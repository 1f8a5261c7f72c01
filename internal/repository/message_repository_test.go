package repository

import (
	"testing"

	"phone-book/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type capturedSQL struct {
	sql  []string
	vars [][]interface{}
}

func (c *capturedSQL) last() (string, []interface{}) {
	if len(c.sql) == 0 {
		return "", nil
	}
	return c.sql[len(c.sql)-1], c.vars[len(c.vars)-1]
}

// newDryRunDB 构建只生成SQL、不连接数据库的gorm实例
func newDryRunDB(t *testing.T) (*gorm.DB, *capturedSQL) {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "phonebook:phonebook@tcp(127.0.0.1:3306)/phone_book?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		NamingStrategy:         schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)

	captured := &capturedSQL{}
	record := func(tx *gorm.DB) {
		captured.sql = append(captured.sql, tx.Statement.SQL.String())
		captured.vars = append(captured.vars, append([]interface{}(nil), tx.Statement.Vars...))
	}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", record))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", record))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:capture_delete", record))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("test:capture_row", record))
	return db, captured
}

func TestMessageRepository_Create(t *testing.T) {
	req := require.New(t)
	db, captured := newDryRunDB(t)
	repo := NewMessageRepository(db)
	userID := uint(7)

	err := repo.Create(&model.Message{Type: model.TypeEmail, Body: "hello", Status: model.StatusQueued, UserID: &userID, ContactID: 3})

	req.NoError(err)
	sql, vars := captured.last()
	req.Contains(sql, "INSERT INTO `message`")
	req.Contains(vars, model.TypeEmail)
	req.Contains(vars, "hello")
	req.Contains(vars, uint(3))
}

func TestMessageRepository_Update(t *testing.T) {
	req := require.New(t)
	db, captured := newDryRunDB(t)
	repo := NewMessageRepository(db)

	err := repo.Update(&model.Message{ID: 5, Type: model.TypeText, Status: model.StatusSent, ContactID: 3})

	req.NoError(err)
	sql, vars := captured.last()
	req.Contains(sql, "UPDATE `message` SET")
	req.Contains(sql, "`status`=?")
	req.Contains(vars, model.StatusSent)
}

func TestMessageRepository_ListByUser(t *testing.T) {
	req := require.New(t)
	db, captured := newDryRunDB(t)
	repo := NewMessageRepository(db)

	_, err := repo.ListByUser(7, 20, 40)

	req.NoError(err)
	sql, vars := captured.last()
	req.Contains(sql, "FROM `message`")
	req.Contains(sql, "user_id = ?")
	req.Contains(sql, "ORDER BY created_at DESC")
	req.Contains(vars, uint(7))
}

func TestMessageRepository_ListByContact(t *testing.T) {
	req := require.New(t)
	db, captured := newDryRunDB(t)
	repo := NewMessageRepository(db)

	_, err := repo.ListByContact(3, 10, 0)

	req.NoError(err)
	sql, vars := captured.last()
	req.Contains(sql, "contact_id = ?")
	req.Contains(vars, uint(3))
}

func TestMessageRepository_UserNavigation(t *testing.T) {
	req := require.New(t)
	db, captured := newDryRunDB(t)
	repo := NewMessageRepository(db)

	_, err := repo.User(&model.Message{ID: 1})
	req.ErrorIs(err, ErrUserNotFound)
	req.Empty(captured.sql, "no query without a user id")

	userID := uint(9)
	_, err = repo.User(&model.Message{ID: 1, UserID: &userID})
	req.NoError(err)
	sql, vars := captured.last()
	req.Contains(sql, "FROM `user`")
	req.Contains(vars, uint(9))
}

func TestMessageRepository_ContactNavigation(t *testing.T) {
	req := require.New(t)
	db, captured := newDryRunDB(t)
	repo := NewMessageRepository(db)

	_, err := repo.Contact(&model.Message{ID: 1, ContactID: 4})

	req.NoError(err)
	sql, vars := captured.last()
	req.Contains(sql, "FROM `contact`")
	req.Contains(vars, uint(4))
}

func TestContactRepository_ListByUser(t *testing.T) {
	req := require.New(t)
	db, captured := newDryRunDB(t)
	repo := NewContactRepository(db)

	_, err := repo.ListByUser(2, 50, 0)

	req.NoError(err)
	sql, vars := captured.last()
	req.Contains(sql, "FROM `contact`")
	req.Contains(sql, "ORDER BY name ASC")
	req.Contains(vars, uint(2))
}
