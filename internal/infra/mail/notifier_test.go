package mail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestRenderStageChange(t *testing.T) {
	body, err := renderStageChange(StageChangeData{OwnerName: "Ana", DealTitle: "Site novo", StageName: "Fechado"})
	require.NoError(t, err)
	assert.Contains(t, body, "Olá, Ana!")
	assert.Contains(t, body, "<strong>Site novo</strong>")
	assert.Contains(t, body, "<strong>Fechado</strong>")
}

func TestRenderStageChange_EscapesHTML(t *testing.T) {
	body, err := renderStageChange(StageChangeData{DealTitle: "<script>x</script>", StageName: "Lead"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "Olá, time!")
}

func TestNotifyStageChange(t *testing.T) {
	d := &fakeDialer{}
	n := NewNotifierWithDialer(d, "crm@lintra.com.br")

	require.NoError(t, n.NotifyStageChange("ana@lintra.com.br", "Ana", "Site novo", "Fechado"))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"ana@lintra.com.br"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"crm@lintra.com.br"}, d.sent[0].GetHeader("From"))
}

func TestNotifyStageChange_SMTPError(t *testing.T) {
	n := NewNotifierWithDialer(&fakeDialer{err: errors.New("connection refused")}, "crm@lintra.com.br")

	err := n.NotifyStageChange("ana@lintra.com.br", "Ana", "Site novo", "Fechado")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
