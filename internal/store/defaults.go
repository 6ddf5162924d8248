package store

import (
	"pvillar/hogarfin/internal/models"
)

// DefaultRules returns the built-in category rule table. Order is match
// priority. Patterns are case-insensitive regular expressions; several keep
// a trailing space on purpose ("bar ", "bus ") so they match the word, not
// every description containing the letter run.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		{
			Name: models.CategoryHousing,
			Patterns: []string{
				"alquiler", "rent", "hipoteca", "mortgage", "agua", "water",
				"luz", "electric", "gas", "internet", "telefono", "phone",
				"seguro.*hogar", "home.*insurance", "comunidad", "impuesto",
				"ibi", "basura", "garbage", "utilities",
			},
		},
		{
			Name: models.CategoryGroceries,
			Patterns: []string{
				"mercadona", "carrefour", "lidl", "aldi", "dia", "eroski",
				"alcampo", "hipercor", "supermercado", "supermarket", "grocery",
				"alimentacion", "frutas", "verduras", "primaprix", "consum",
				"bonarea", "condis", "ahorramas", "simply",
			},
		},
		{
			Name: models.CategoryDining,
			Patterns: []string{
				"restaurante", "restaurant", "bar ", "cafe", "cafeteria",
				"mcdonalds", "burger", "pizza", "kebab", "sushi", "wok",
				"just.*eat", "glovo", "uber.*eats", "deliveroo", "takeaway",
				"comida", "cena", "almuerzo", "desayuno", "tapas",
			},
		},
		{
			Name: models.CategorySubscriptions,
			Patterns: []string{
				"netflix", "spotify", "hbo", "disney", "amazon.*prime",
				"youtube.*premium", "apple.*music", "icloud", "google.*one",
				"dropbox", "notion", "canva", "adobe", "microsoft.*365",
				"gym.*member", "gimnasio", "suscripcion", "subscription",
			},
		},
		{
			Name: models.CategoryTransport,
			Patterns: []string{
				"gasolina", "fuel", "repsol", "cepsa", "bp ", "shell",
				"parking", "aparcamiento", "metro", "bus ", "autobus",
				"renfe", "tren", "train", "taxi", "uber", "cabify", "bolt",
				"blablacar", "peaje", "toll", "itv", "taller", "mecanico",
			},
		},
		{
			Name: models.CategoryLeisure,
			Patterns: []string{
				"cine", "cinema", "teatro", "theater", "concierto", "concert",
				"museo", "museum", "parque.*atracciones", "zoo", "aquarium",
				"escape.*room", "bolos", "bowling", "karaoke", "discoteca",
				"club", "fiesta", "party", "viaje", "travel", "hotel",
				"airbnb", "booking", "vuelo", "flight", "ryanair", "vueling",
			},
		},
		{
			Name: models.CategoryShopping,
			Patterns: []string{
				"zara", "hm", "h&m", "mango", "primark", "pull.*bear",
				"bershka", "stradivarius", "massimo.*dutti", "uniqlo",
				"decathlon", "mediamarkt", "fnac", "el.*corte.*ingles",
				"amazon", "aliexpress", "ikea", "leroy.*merlin", "tienda",
				"store", "compra", "purchase", "ropa", "clothes",
			},
		},
		{
			Name: models.CategoryHealth,
			Patterns: []string{
				"farmacia", "pharmacy", "medico", "doctor", "hospital",
				"clinica", "clinic", "dentista", "dentist", "optica",
				"fisio", "physio", "psicologo", "therapy", "spa",
				"peluqueria", "hairdresser", "estetica", "beauty",
			},
		},
		{
			Name: models.CategoryFinancial,
			Patterns: []string{
				"transferencia", "transfer", "comision", "commission", "fee",
				"interes", "interest", "prestamo", "loan", "credito", "credit",
				"inversion", "investment", "ahorro", "savings", "bizum",
				"paypal", "revolut", "n26", "wise",
			},
		},
	}
}
