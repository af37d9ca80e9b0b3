package services

import (
	"fmt"
	"log"
	"net/smtp"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/dto"
	"github.com/jromanati/vivienda-chile-sub000/repositories"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactService procesa los leads del formulario de contacto:
// valida, persiste y notifica por correo. La notificación es un
// efecto secundario no crítico: si el correo falla el lead ya
// quedó guardado y el usuario recibe éxito igual.
type ContactService interface {
	Submit(request dto.ContactRequest) (*domain.ContactLead, error)
}

// Mailer abstrae el envío de correo para poder testear el servicio
type Mailer interface {
	Send(to, subject, body string) error
}

// contactService implementa ContactService
type contactService struct {
	leads     repositories.LeadRepository
	mailer    Mailer
	recipient string
}

// NewContactService crea una nueva instancia de ContactService
func NewContactService(leads repositories.LeadRepository, mailer Mailer, recipient string) ContactService {
	return &contactService{
		leads:     leads,
		mailer:    mailer,
		recipient: recipient,
	}
}

// Submit valida y procesa un lead
func (s *contactService) Submit(request dto.ContactRequest) (*domain.ContactLead, error) {
	if err := validateContactRequest(&request); err != nil {
		return nil, err
	}

	lead := &domain.ContactLead{
		UUID:       uuid.NewString(),
		Name:       strings.TrimSpace(request.Name),
		Email:      strings.TrimSpace(request.Email),
		Phone:      strings.TrimSpace(request.Phone),
		Message:    strings.TrimSpace(request.Message),
		PropertyID: request.PropertyID,
		ServiceID:  request.ServiceID,
		PageURL:    request.PageURL,
		Title:      request.Title,
	}

	if err := s.leads.Create(lead); err != nil {
		return nil, fmt.Errorf("error saving lead: %w", err)
	}
	log.Printf("ContactService: lead %s saved (email=%s)", lead.UUID, lead.Email)

	// Notificación por correo: no crítica, no bloquea el resultado
	if s.mailer != nil && s.recipient != "" {
		subject := "Nuevo contacto desde el sitio"
		if lead.Title != "" {
			subject = "Nuevo contacto: " + lead.Title
		}
		if err := s.mailer.Send(s.recipient, subject, leadEmailBody(lead)); err != nil {
			log.Printf("ContactService: error sending notification email for lead %s: %v", lead.UUID, err)
		}
	}

	return lead, nil
}

// validateContactRequest valida los campos obligatorios del formulario
func validateContactRequest(request *dto.ContactRequest) error {
	if strings.TrimSpace(request.Name) == "" {
		return &ValidationError{Message: "name is required"}
	}
	email := strings.TrimSpace(request.Email)
	if email == "" {
		return &ValidationError{Message: "email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Message: "email is not valid"}
	}
	if strings.TrimSpace(request.Message) == "" {
		return &ValidationError{Message: "message is required"}
	}
	return nil
}

// leadEmailBody arma el cuerpo del correo de notificación
func leadEmailBody(lead *domain.ContactLead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", lead.Name)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	if lead.Phone != "" {
		fmt.Fprintf(&b, "Teléfono: %s\n", lead.Phone)
	}
	if lead.PropertyID != "" {
		fmt.Fprintf(&b, "Propiedad: %s\n", lead.PropertyID)
	}
	if lead.PageURL != "" {
		fmt.Fprintf(&b, "Página: %s\n", lead.PageURL)
	}
	fmt.Fprintf(&b, "\n%s\n", lead.Message)
	return b.String()
}

// SMTPMailer envía correos por SMTP con autenticación plana
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

// Send envía un correo
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := []byte("From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" + body)

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, msg)
}
