package kvstore

import "agendesaude/internal/domain"

func loc(lat, lon float64) *domain.Coords { return &domain.Coords{Lat: lat, Lon: lon} }

// SeedClinics is the fixed directory a fresh deployment starts with.
// Average ratings are carried from the original dataset; they are
// overwritten by the aggregator as soon as a clinic receives its first
// review mutation.
func SeedClinics() []domain.Clinic {
	return []domain.Clinic{
		{
			ID:            "1",
			Name:          "Clínica Águas Claras Saúde",
			Email:         "contato@aguasclarassaude.com",
			Specialties:   []string{"Clínico Geral", "Cardiologia", "Pediatria"},
			Address:       "Rua 25 Norte, Lote 2/4 - Águas Claras, Brasília-DF",
			Neighborhood:  "Águas Claras",
			Phone:         "(61) 99808-0577",
			WhatsApp:      "(61) 99808-0577",
			Hours:         "Seg-Sex: 7h às 19h, Sáb: 8h às 14h",
			Description:   "Clínica moderna em Águas Claras com atendimento médico de qualidade.",
			Image:         "/fachada-noite.jpg",
			AverageRating: 4.8,
			Active:        true,
			Location:      loc(-15.8347, -48.0434),
		},
		{
			ID:            "2",
			Name:          "Centro Médico Águas Claras",
			Email:         "contato@cmaguasclaras.com",
			Specialties:   []string{"Ortopedia", "Fisioterapia", "Nutrição"},
			Address:       "Avenida das Araucárias, 4.700 - Águas Claras, Brasília-DF",
			Neighborhood:  "Águas Claras",
			Phone:         "(61) 98484-3332",
			WhatsApp:      "(61) 98484-3332",
			Hours:         "Seg-Sáb: 6h às 20h",
			Description:   "Centro médico especializado em ortopedia e reabilitação.",
			Image:         "/placeholder.svg?height=300&width=600",
			AverageRating: 4.6,
			Active:        true,
			Location:      loc(-15.8367, -48.0454),
		},
		{
			ID:            "3",
			Name:          "Dra. Marina Silva - Dermatologia",
			Email:         "dra.marina@dermaaguasclaras.com",
			Specialties:   []string{"Dermatologia"},
			Address:       "Rua 7 Norte, Lote 5 - Águas Claras, Brasília-DF",
			Neighborhood:  "Águas Claras",
			Phone:         "(61) 3333-1003",
			WhatsApp:      "(61) 99999-1003",
			Hours:         "Seg-Sex: 8h às 18h",
			Description:   "Dermatologista especializada em tratamentos estéticos e clínicos.",
			Image:         "/placeholder.svg?height=300&width=600",
			AverageRating: 4.9,
			Active:        true,
			Location:      loc(-15.8327, -48.0414),
		},
		{
			ID:            "4",
			Name:          "Clínica Psicológica Bem Viver",
			Email:         "contato@bemviver.com",
			Specialties:   []string{"Psicologia", "Psiquiatria"},
			Address:       "Rua 12 Norte, Lote 10 - Águas Claras, Brasília-DF",
			Neighborhood:  "Águas Claras",
			Phone:         "(61) 3333-1004",
			WhatsApp:      "(61) 99999-1004",
			Hours:         "Seg-Sex: 7h às 21h, Sáb: 8h às 16h",
			Description:   "Clínica especializada em saúde mental com equipe multidisciplinar.",
			Image:         "/placeholder.svg?height=300&width=600",
			AverageRating: 4.7,
			Active:        true,
			Location:      loc(-15.8357, -48.0444),
		},
		{
			ID:            "5",
			Name:          "Dr. Carlos Mendes - Cardiologia",
			Email:         "dr.carlos@cardioaguasclaras.com",
			Specialties:   []string{"Cardiologia"},
			Address:       "Avenida Castanheiras, 3.200 - Águas Claras, Brasília-DF",
			Neighborhood:  "Águas Claras",
			Phone:         "(61) 3333-1005",
			WhatsApp:      "(61) 99999-1005",
			Hours:         "Seg-Sex: 8h às 17h",
			Description:   "Cardiologista com mais de 15 anos de experiência.",
			Image:         "/placeholder.svg?height=300&width=600",
			AverageRating: 4.8,
			Active:        true,
			Location:      loc(-15.8337, -48.0424),
		},
		{
			ID:            "6",
			Name:          "Clínica Saúde Total",
			Email:         "contato@saudetotal.com",
			Specialties:   []string{"Clínico Geral", "Cardiologia", "Pediatria"},
			Address:       "SGAS 915 - Asa Sul, Brasília-DF",
			Neighborhood:  "Asa Sul",
			Phone:         "(61) 99999-9999",
			WhatsApp:      "(61) 99999-9999",
			Hours:         "Seg-Sex: 8h às 19h",
			Description:   "Atendimento médico de qualidade há mais de 15 anos.",
			Image:         "/placeholder.svg?height=300&width=600",
			AverageRating: 4.8,
			Active:        true,
			Location:      loc(-15.8132, -47.9121),
		},
		{
			ID:            "7",
			Name:          "Centro Médico Bem Estar",
			Email:         "contato@bemestar.com",
			Specialties:   []string{"Ortopedia", "Fisioterapia", "Nutrição"},
			Address:       "CLN 208 Bloco D - Asa Norte, Brasília-DF",
			Neighborhood:  "Asa Norte",
			Phone:         "(61) 88888-8888",
			WhatsApp:      "(61) 88888-8888",
			Hours:         "Seg-Sáb: 7h às 20h",
			Description:   "Especializado em tratamentos ortopédicos e reabilitação.",
			Image:         "/placeholder.svg?height=300&width=600",
			AverageRating: 4.5,
			Active:        true,
			Location:      loc(-15.7732, -47.8821),
		},
		{
			ID:            "8",
			Name:          "Instituto de Saúde Mental",
			Email:         "contato@ism.com",
			Specialties:   []string{"Psicologia", "Psiquiatria"},
			Address:       "SCRN 708/709 - Asa Norte, Brasília-DF",
			Neighborhood:  "Asa Norte",
			Phone:         "(61) 66666-6666",
			WhatsApp:      "(61) 66666-6666",
			Hours:         "Seg-Sex: 8h às 20h",
			Description:   "Instituto especializado em saúde mental com equipe multidisciplinar.",
			Image:         "/placeholder.svg?height=300&width=600",
			AverageRating: 4.7,
			Active:        true,
			Location:      loc(-15.7632, -47.8721),
		},
	}
}
