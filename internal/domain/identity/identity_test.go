package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Maria@Empresa.com.br", "Maria Silva", "segredo123")
	require.NoError(t, err)

	assert.Equal(t, "maria@empresa.com.br", user.Email)
	assert.True(t, user.Active)
	assert.True(t, user.VerifyPassword("segredo123"))
	assert.False(t, user.VerifyPassword("errada"))
}

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("invalido", "Nome", "segredo123")
	assert.Error(t, err)

	_, err = NewUser("a@b.com", "", "segredo123")
	assert.Error(t, err)

	_, err = NewUser("a@b.com", "Nome", "curta")
	assert.Error(t, err)
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("a@b.com", "Nome", "segredo123")
	require.NoError(t, err)

	assert.Error(t, user.ChangePassword("errada", "novasenha1"))

	require.NoError(t, user.ChangePassword("segredo123", "novasenha1"))
	assert.True(t, user.VerifyPassword("novasenha1"))
	assert.False(t, user.VerifyPassword("segredo123"))
}

func TestUserRecordLogin(t *testing.T) {
	user, err := NewUser("a@b.com", "Nome", "segredo123")
	require.NoError(t, err)

	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	user.RecordLogin(at)
	require.NotNil(t, user.LastLoginAt)
	assert.True(t, user.LastLoginAt.Equal(at))
}

func TestNewCompanyMember(t *testing.T) {
	member, err := NewCompanyMember(uuid.New(), uuid.New(), true)
	require.NoError(t, err)
	assert.True(t, member.Owner)

	_, err = NewCompanyMember(uuid.Nil, uuid.New(), false)
	assert.Error(t, err)

	_, err = NewCompanyMember(uuid.New(), uuid.Nil, false)
	assert.Error(t, err)
}

func TestNewRole(t *testing.T) {
	role, err := NewRole(uuid.New(), "Financeiro", []string{"contas:ver", "contas:liquidar", "CONTAS:VER"})
	require.NoError(t, err)

	// duplicates collapse, codes are normalized
	assert.Len(t, role.Permissions, 2)
	assert.True(t, role.Grants("contas:ver"))
	assert.False(t, role.Grants("vendas:criar"))
}

func TestNewRoleRejectsMalformedPermissions(t *testing.T) {
	_, err := NewRole(uuid.New(), "Cargo", []string{"semacao"})
	assert.Error(t, err)

	_, err = NewRole(uuid.New(), "", nil)
	assert.Error(t, err)
}

func TestRoleWildcardGrant(t *testing.T) {
	role, err := NewRole(uuid.New(), "Admin", []string{"vendas:*"})
	require.NoError(t, err)

	assert.True(t, role.Grants("vendas:criar"))
	assert.True(t, role.Grants("vendas:cancelar"))
	assert.False(t, role.Grants("compras:criar"))
}

func TestNewCompany(t *testing.T) {
	company, err := NewCompany("  Oficina do Zé  ")
	require.NoError(t, err)
	assert.Equal(t, "Oficina do Zé", company.Name)
	assert.True(t, company.Active)

	_, err = NewCompany("   ")
	assert.Error(t, err)
}
