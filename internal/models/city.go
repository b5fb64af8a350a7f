package models

// MoroccanCities liste les villes de livraison proposées au checkout
var MoroccanCities = []string{
	"Casablanca", "Rabat", "Marrakech", "Fès", "Tanger", "Agadir",
	"Meknès", "Oujda", "Kénitra", "Tétouan", "El Jadida", "Safi",
	"Mohammedia", "Khouribga", "Béni Mellal", "Nador", "Taza",
	"Settat", "Berrechid", "Khémisset", "Guelmim", "Témara",
	"Ouarzazate", "Essaouira", "Larache", "Dakhla", "Laâyoune",
}

// IsDeliveryCity vérifie que la ville fait partie de la liste (comparaison exacte)
func IsDeliveryCity(city string) bool {
	return contains(MoroccanCities, city)
}
