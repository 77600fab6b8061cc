package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mootechpic/identity/internal/service"
	"modernc.org/sqlite"
)

// sqlite extended result code for a UNIQUE constraint violation
const sqliteConstraintUnique = 2067

func (s *SQLiteStore) CredentialStore() service.CredentialStore {
	return s
}

func (s *SQLiteStore) InsertAccount(
	account *service.Account,
) error {
	_, err := s.db.Exec(`
		INSERT INTO account (id, email, name, secret, role)
		VALUES (?1, ?2, ?3, ?4, ?5);`,
		account.ID,
		account.Email,
		nullableString(account.Name),
		account.Secret,
		account.Role,
	)
	if err != nil {
		// two racing registrations can both pass the service-level
		// pre-check; the unique index is the authority
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintUnique {
			return fmt.Errorf("%w: %s", service.ErrEmailTaken, account.Email)
		}
		return fmt.Errorf("couldn't insert into account: %v", err)
	}
	return nil
}

func (s *SQLiteStore) GetAccountByEmail(
	email string,
) (
	*service.Account,
	error,
) {
	row := s.db.QueryRow(`
		SELECT id, email, name, secret, role, refresh_token, refresh_expiration
		FROM account
		WHERE email=?1;`,
		email,
	)
	return scanAccount(row)
}

func (s *SQLiteStore) GetAccountByID(
	id string,
) (
	*service.Account,
	error,
) {
	row := s.db.QueryRow(`
		SELECT id, email, name, secret, role, refresh_token, refresh_expiration
		FROM account
		WHERE id=?1;`,
		id,
	)
	return scanAccount(row)
}

func (s *SQLiteStore) SetRefreshToken(
	id string,
	token string,
	expiration time.Time,
) error {
	result, err := s.db.Exec(`
		UPDATE account
		SET refresh_token=?1, refresh_expiration=?2
		WHERE id=?3;`,
		token,
		expiration.Unix(),
		id,
	)
	if err != nil {
		return fmt.Errorf("couldn't update refresh token: %v", err)
	}
	if resultsEmpty(result) {
		return service.ErrAccountNotFound
	}
	return nil
}

func (s *SQLiteStore) RotateRefreshToken(
	id string,
	presented string,
	next string,
	expiration time.Time,
) (
	bool,
	error,
) {
	// single-statement compare-and-swap: the stored token must equal the
	// presented one and must not have expired, or no row changes
	result, err := s.db.Exec(`
		UPDATE account
		SET refresh_token=?1, refresh_expiration=?2
		WHERE id=?3
			AND refresh_token=?4
			AND refresh_expiration>?5;`,
		next,
		expiration.Unix(),
		id,
		presented,
		time.Now().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("couldn't rotate refresh token: %v", err)
	}

	swapped := !resultsEmpty(result)
	return swapped, nil
}

func scanAccount(row *sql.Row) (*service.Account, error) {
	var (
		account    service.Account
		name       sql.NullString
		token      sql.NullString
		expiration sql.NullInt64
	)

	err := row.Scan(
		&account.ID,
		&account.Email,
		&name,
		&account.Secret,
		&account.Role,
		&token,
		&expiration,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrAccountNotFound
		}
		return nil, fmt.Errorf("couldn't scan account: %v", err)
	}

	account.Name = name.String
	account.RefreshToken = token.String
	if expiration.Valid {
		account.RefreshExpiration = time.Unix(expiration.Int64, 0)
	}
	return &account, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func resultsEmpty(result sql.Result) bool {
	count, err := result.RowsAffected()
	if err != nil {
		return false
	}
	return count == 0
}
