package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadSource string

const (
	LeadInquiry LeadSource = "inquiry"
	LeadService LeadSource = "service"
	LeadContact LeadSource = "contact"
)

func (s LeadSource) Valid() bool {
	return s == LeadInquiry || s == LeadService || s == LeadContact
}

// Lead is any inbound request from the public site.
type Lead struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Source         LeadSource         `json:"source" bson:"source"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Technology     string             `json:"technology,omitempty" bson:"technology,omitempty"`
	HelpType       string             `json:"helpType,omitempty" bson:"help_type,omitempty"`
	ServiceID      string             `json:"serviceId,omitempty" bson:"service_id,omitempty"`
	ServiceTitle   string             `json:"serviceTitle,omitempty" bson:"service_title,omitempty"`
	ServicePricing string             `json:"servicePricing,omitempty" bson:"service_pricing,omitempty"`
	Subject        string             `json:"subject,omitempty" bson:"subject,omitempty"`
	Message        string             `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
}

// InquiryRequest accepts both the old and new field names of the tech help form.
type InquiryRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Tech       string `json:"tech" validate:"required_without=Technology"`
	Technology string `json:"technology" validate:"required_without=Tech"`
	HelpType   string `json:"helpType" validate:"required"`
	Contact    string `json:"contact" validate:"required_without=Phone"`
	Phone      string `json:"phone" validate:"required_without=Contact"`
}

func (r *InquiryRequest) Lead() *Lead {
	tech := r.Tech
	if tech == "" {
		tech = r.Technology
	}
	phone := r.Contact
	if phone == "" {
		phone = r.Phone
	}
	return &Lead{
		Source:     LeadInquiry,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      phone,
		Technology: tech,
		HelpType:   r.HelpType,
	}
}

type ServiceInquiryRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	ServiceID      string `json:"serviceId" validate:"required"`
	ServiceTitle   string `json:"serviceTitle" validate:"required"`
	ServicePricing string `json:"servicePricing" validate:"required"`
}

func (r *ServiceInquiryRequest) Lead() *Lead {
	return &Lead{
		Source:         LeadService,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		ServiceID:      r.ServiceID,
		ServiceTitle:   r.ServiceTitle,
		ServicePricing: r.ServicePricing,
	}
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (r *ContactRequest) Lead() *Lead {
	return &Lead{
		Source:  LeadContact,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Subject: r.Subject,
		Message: r.Message,
	}
}
