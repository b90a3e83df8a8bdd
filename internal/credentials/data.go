package credentials

import "github.com/horecastore/storefront-e2e/internal/environments"

// Passwords never live here; see Resolver.Password.
var seed = []envPersonas{
	{env: environments.Dev, markets: []marketPersonas{
		{market: environments.USA, personas: []personaEntry{
			{Private, Persona{Username: "testpvtuser.usa.dev@sharklasers.com", Role: "Private User", FirstName: "John", LastName: "Doe"}},
			{Business, Persona{Username: "testbususer.usa.dev@sharklasers.com", Role: "Business User", FirstName: "Jane", LastName: "Smith", CompanyName: "Dev Corp USA"}},
			{Gmail, Persona{Username: "testgmailuser.usa.dev@gmail.com", Role: "Gmail User", FirstName: "Mike", LastName: "Johnson"}},
		}},
		{market: environments.UAE, personas: []personaEntry{
			{Private, Persona{Username: "testpvtuser.uae.dev@sharklasers.com", Role: "Private User", FirstName: "Ahmed", LastName: "Al-Rashid"}},
			{Business, Persona{Username: "testbususer.uae.dev@sharklasers.com", Role: "Business User", FirstName: "Fatima", LastName: "Al-Zahra", CompanyName: "Dev Corp UAE"}},
			{Gmail, Persona{Username: "testgmailuser.uae.dev@gmail.com", Role: "Gmail User", FirstName: "Omar", LastName: "Hassan"}},
		}},
	}},
	{env: environments.Test, markets: []marketPersonas{
		{market: environments.USA, personas: []personaEntry{
			{Private, Persona{Username: "testpvtuser.usa.test@sharklasers.com", Role: "Private User", FirstName: "Robert", LastName: "Wilson"}},
			{Business, Persona{Username: "testbususer.usa.test@sharklasers.com", Role: "Business User", FirstName: "Sarah", LastName: "Davis", CompanyName: "Test Corp USA"}},
			{Gmail, Persona{Username: "testgmailuser.usa.test@gmail.com", Role: "Gmail User", FirstName: "David", LastName: "Brown"}},
		}},
		{market: environments.UAE, personas: []personaEntry{
			{Private, Persona{Username: "testpvtuser.uae.test@sharklasers.com", Role: "Private User", FirstName: "Ali", LastName: "Al-Mahmoud"}},
			{Business, Persona{Username: "testbususer.uae.test@sharklasers.com", Role: "Business User", FirstName: "Aisha", LastName: "Al-Qasimi", CompanyName: "Test Corp UAE"}},
			{Gmail, Persona{Username: "testgmailuser.uae.test@gmail.com", Role: "Gmail User", FirstName: "Khalid", LastName: "Al-Shamsi"}},
		}},
	}},
	{env: environments.Prod, markets: []marketPersonas{
		{market: environments.USA, personas: []personaEntry{
			{Private, Persona{Username: "testpvtuser.usa.prod@sharklasers.com", Role: "Private User", FirstName: "Michael", LastName: "Anderson"}},
			{Business, Persona{Username: "testbususer.usa.prod@sharklasers.com", Role: "Business User", FirstName: "Lisa", LastName: "Taylor", CompanyName: "Prod Corp USA"}},
			{Gmail, Persona{Username: "testgmailuser.usa.prod@gmail.com", Role: "Gmail User", FirstName: "James", LastName: "Martinez"}},
		}},
		{market: environments.UAE, personas: []personaEntry{
			{Private, Persona{Username: "testpvtuser.uae.prod@sharklasers.com", Role: "Private User", FirstName: "Hassan", LastName: "Al-Mansoori"}},
			{Business, Persona{Username: "testbususer.uae.prod@sharklasers.com", Role: "Business User", FirstName: "Mariam", LastName: "Al-Blooshi", CompanyName: "Prod Corp UAE"}},
			{Gmail, Persona{Username: "testgmailuser.uae.prod@gmail.com", Role: "Gmail User", FirstName: "Saeed", LastName: "Al-Ketbi"}},
		}},
	}},
}
