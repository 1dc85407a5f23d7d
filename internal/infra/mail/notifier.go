package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var stageChangeTmpl = template.Must(template.ParseFS(templatesFS, "templates/stage_change.html"))

type StageChangeData struct {
	OwnerName string
	DealTitle string
	StageName string
}

// Dialer is the part of *gomail.Dialer the notifier uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Notifier struct {
	From   string
	dialer Dialer
}

func NewNotifier(host string, port int, user, password, from string) *Notifier {
	return &Notifier{From: from, dialer: gomail.NewDialer(host, port, user, password)}
}

// NewNotifierWithDialer é usado nos testes.
func NewNotifierWithDialer(d Dialer, from string) *Notifier {
	return &Notifier{From: from, dialer: d}
}

// NotifyStageChange avisa o responsável que a oportunidade mudou de etapa.
func (n *Notifier) NotifyStageChange(to, ownerName, dealTitle, stageName string) error {
	m, err := n.stageChangeMessage(to, StageChangeData{
		OwnerName: ownerName,
		DealTitle: dealTitle,
		StageName: stageName,
	})
	if err != nil {
		return err
	}
	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (n *Notifier) stageChangeMessage(to string, data StageChangeData) (*gomail.Message, error) {
	body, err := renderStageChange(data)
	if err != nil {
		return nil, err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s agora está em %s", data.DealTitle, data.StageName))
	m.SetBody("text/html", body)
	return m, nil
}

func renderStageChange(data StageChangeData) (string, error) {
	if data.OwnerName == "" {
		data.OwnerName = "time"
	}
	var body bytes.Buffer
	if err := stageChangeTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}
