package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
)

func TestActionErrorMessage(t *testing.T) {
	withMessage := remoteFailure("salvar funil", &lintra.APIError{Status: 400, Message: "Nome já existe"})
	assert.EqualError(t, withMessage, "Erro ao salvar funil: Nome já existe")

	withoutMessage := remoteFailure("salvar funil", errors.New("dial tcp: refused"))
	assert.EqualError(t, withoutMessage, "Erro ao salvar funil.")
	assert.True(t, IsTechnicalError(withoutMessage))
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := notFound("funil não encontrado")
	assert.True(t, IsNotFound(err))
	assert.True(t, IsDomainError(err))
	assert.EqualError(t, err, "funil não encontrado")

	remote := remoteFailure("carregar cliente", &lintra.APIError{Status: 404})
	assert.ErrorIs(t, remote, entity.ErrNotFound)
}
