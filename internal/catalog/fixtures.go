package catalog

func fixtures() []Item {
	return []Item{
		{ID: "ebook-1", Type: TypeEbook, Title: "Guía Completa del Derecho Penal Ecuatoriano", Category: "Derecho Penal",
			Image: "/images/ebook-derecho-penal.jpg", Price: 49.99, OriginalPrice: 79.99,
			Description: "Procedimientos penales, derechos del imputado y estrategias de defensa."},
		{ID: "ebook-2", Type: TypeEbook, Title: "Derecho Comercial y Empresarial Moderno", Category: "Derecho Comercial",
			Image: "/images/ebook-derecho-comercial.jpg", Price: 39.99, OriginalPrice: 59.99,
			Description: "Constitución de empresas, contratos y protección legal."},
		{ID: "ebook-3", Type: TypeEbook, Title: "Manual de Derechos Laborales", Category: "Derecho Laboral",
			Image: "/images/ebook-derecho-laboral.jpg", Price: 29.99, OriginalPrice: 44.99,
			Description: "Legislación laboral para empleadores y trabajadores."},

		{ID: "masterclass-1", Type: TypeMasterclass, Title: "Estrategias Avanzadas en Defensa Penal", Category: "Derecho Penal",
			Image: "/images/masterclass-defensa-penal.jpg", Price: 299.99},
		{ID: "masterclass-2", Type: TypeMasterclass, Title: "Constitución y Gestión de Empresas", Category: "Derecho Empresarial",
			Image: "/images/masterclass-empresas.jpg", Price: 199.99},
		{ID: "masterclass-3", Type: TypeMasterclass, Title: "Nuevas Reformas Laborales 2024", Category: "Derecho Laboral",
			Image: "/images/masterclass-reformas-laborales.jpg", Price: 149.99},

		{ID: "curso-1", Type: TypeCourse, Title: "Fundamentos del Derecho Ecuatoriano", Category: "Derecho General",
			Image: "/images/curso-fundamentos.jpg", Price: 199.99},
		{ID: "curso-2", Type: TypeCourse, Title: "Especialización en Litigios Civiles", Category: "Derecho Civil",
			Image: "/images/curso-litigios-civiles.jpg", Price: 499.99},

		{ID: "producto-1", Type: TypeProduct, Title: "Kit de Plantillas Legales Empresariales", Category: "Plantillas Legales",
			Image: "/images/kit-plantillas-empresariales.jpg", Price: 149.99},
		{ID: "producto-2", Type: TypeProduct, Title: "Calculadora de Beneficios Sociales", Category: "Herramientas Digitales",
			Image: "/images/calculadora-beneficios.jpg", Price: 79.99},
		{ID: "producto-3", Type: TypeProduct, Title: "Biblioteca Jurisprudencial Digital", Category: "Base de Datos",
			Image: "/images/biblioteca-jurisprudencial.jpg", Price: 299.99},

		// Consultation services double as the booking price table.
		{ID: "consultation", Type: TypeService, Title: "Consulta Legal", Category: "Consultas", Price: 60},
		{ID: "legal_advice", Type: TypeService, Title: "Asesoría Legal", Category: "Consultas", Price: 120},
		{ID: "document_review", Type: TypeService, Title: "Revisión de Documentos", Category: "Consultas", Price: 80},
		{ID: "court_representation", Type: TypeService, Title: "Representación en Juicio", Category: "Consultas", Price: 500},
	}
}
