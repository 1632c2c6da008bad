package domain

// DemoInventory returns the built-in demonstration catalog. It seeds
// anonymous sessions and is restored by a system reset.
func DemoInventory() []Product {
	return []Product{
		{ID: "1", Name: "Saco de Arroz Costeño (50 kg)", Category: "Abarrotes", Stock: 5, Price: 135.0, MinStock: 20, TargetStock: 50, Unit: DefaultUnit},
		{ID: "2", Name: "Aceite Primor Premium (Botella 1L)", Category: "Aceites", Stock: 48, Price: 14.5, MinStock: 30, TargetStock: 100, Unit: DefaultUnit},
		{ID: "3", Name: "Leche Gloria (Six Pack)", Category: "Lácteos", Stock: 22, Price: 28.0, MinStock: 15, TargetStock: 60, Unit: DefaultUnit},
		{ID: "4", Name: "Fideos Don Vittorio (Paquete 450g)", Category: "Pastas", Stock: 105, Price: 2.8, MinStock: 30, TargetStock: 150, Unit: DefaultUnit},
		{ID: "5", Name: "Azúcar Rubia Paramonga (Saco 50 kg)", Category: "Abarrotes", Stock: 8, Price: 165.0, MinStock: 15, TargetStock: 40, Unit: DefaultUnit},
		{ID: "6", Name: "Detergente Bolívar (Bolsa 1 kg)", Category: "Limpieza", Stock: 35, Price: 9.9, MinStock: 20, TargetStock: 80, Unit: DefaultUnit},
		{ID: "7", Name: "Atún Florida en Lata (170 g)", Category: "Conservas", Stock: 12, Price: 5.2, MinStock: 20, TargetStock: 50, Unit: DefaultUnit},
		{ID: "8", Name: "Ace Detergente (Bolsa 1 kg)", Category: "Limpieza", Stock: 42, Price: 8.5, MinStock: 20, TargetStock: 100, Unit: DefaultUnit},
		{ID: "9", Name: "Sardinas en Aceite (Lata 425 g)", Category: "Conservas", Stock: 6, Price: 6.8, MinStock: 15, TargetStock: 40, Unit: DefaultUnit},
		{ID: "10", Name: "Harina Blanca Flor (Bolsa 50 kg)", Category: "Abarrotes", Stock: 18, Price: 95.0, MinStock: 20, TargetStock: 60, Unit: DefaultUnit},
	}
}
