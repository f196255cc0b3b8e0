package form

import (
	"solidarity-api/internal/domain/entity"
)

// ContactSanitizeSchema normalizes contact form input. Free-text fields
// keep their characters but lose embedded markup; the email is folded
// to lower case so the dedup key is canonical.
func ContactSanitizeSchema() SanitizeSchema {
	return SanitizeSchema{
		"name":    {Trim: true, StripHTML: true, MaxLength: 100},
		"email":   {Trim: true, Case: CaseLower, MaxLength: 254},
		"subject": {Trim: true, StripHTML: true, MaxLength: 200},
		"message": {Trim: true, StripHTML: true, MaxLength: 5000},
	}
}

// ContactValidateSchema checks the contact form after sanitization.
func ContactValidateSchema() ValidateSchema {
	return ValidateSchema{
		"name":    {Required: true, Type: FieldString, MinLength: 2, MaxLength: 100},
		"email":   {Required: true, Type: FieldEmail},
		"subject": {Required: true, Type: FieldString, MinLength: 5, MaxLength: 200},
		"message": {Required: true, Type: FieldString, MinLength: 10, MaxLength: 5000},
	}
}

// PetitionSanitizeSchema normalizes petition signature input.
func PetitionSanitizeSchema() SanitizeSchema {
	return SanitizeSchema{
		"email":     {Trim: true, Case: CaseLower, MaxLength: 254},
		"firstName": {Trim: true, StripHTML: true, MaxLength: 50},
		"lastName":  {Trim: true, StripHTML: true, MaxLength: 50},
		"city":      {Trim: true, StripHTML: true, MaxLength: 100},
	}
}

// PetitionValidateSchema checks a petition signature after sanitization.
// City is optional.
func PetitionValidateSchema() ValidateSchema {
	return ValidateSchema{
		"email":     {Required: true, Type: FieldEmail},
		"firstName": {Required: true, Type: FieldString, MinLength: 2, MaxLength: 50},
		"lastName":  {Required: true, Type: FieldString, MinLength: 2, MaxLength: 50},
		"city":      {Type: FieldString, MaxLength: 100},
	}
}

// NewsletterSanitizeSchema normalizes newsletter subscription input.
func NewsletterSanitizeSchema() SanitizeSchema {
	return SanitizeSchema{
		"email":     {Trim: true, Case: CaseLower, MaxLength: 254},
		"firstName": {Trim: true, StripHTML: true, MaxLength: 50},
	}
}

// NewsletterValidateSchema checks a subscription after sanitization.
// Interests must come from the published interest list.
func NewsletterValidateSchema() ValidateSchema {
	return ValidateSchema{
		"email":     {Required: true, Type: FieldEmail},
		"firstName": {Type: FieldString, MaxLength: 50},
		"interests": {Type: FieldStringArray, Enum: entity.NewsletterInterests},
	}
}
