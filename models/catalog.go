package models

// Grade is a secondary-school year as shown to students.
type Grade string

const (
	GradeFirst  Grade = "1° Secundaria"
	GradeSecond Grade = "2° Secundaria"
	GradeThird  Grade = "3° Secundaria"
	GradeFourth Grade = "4° Secundaria"
	GradeFifth  Grade = "5° Secundaria"
)

var allGrades = []Grade{GradeFirst, GradeSecond, GradeThird, GradeFourth, GradeFifth}

func AllGrades() []Grade {
	return append([]Grade(nil), allGrades...)
}

type CourseInfo struct {
	Grade       Grade       `json:"grade"`
	Course      CourseLabel `json:"course"`
	Description string      `json:"description"`
}

type CatalogResponse struct {
	Grades  []Grade       `json:"grades"`
	Courses []CourseLabel `json:"courses"`
	Entries []CourseInfo  `json:"entries"`
}

var courseDescriptions = map[Grade]map[CourseLabel]string{
	GradeFirst: {
		CourseMath:          "Aprenderás operaciones básicas, fracciones, decimales y resolución de problemas cotidianos.",
		CourseCommunication: "Comprensión de textos narrativos y expresión escrita.",
		CourseScience:       "Seres vivos, cuerpo humano y experimentos simples.",
		CourseWork:          "Uso básico de computadoras y programas como Word y Excel.",
		CourseEnglish:       "Vocabulario inicial, saludos, colores y frases simples.",
	},
	GradeSecond: {
		CourseMath:          "Fracciones, potencias, proporcionalidad y resolución de problemas.",
		CourseCommunication: "Textos informativos, redacción de párrafos y comprensión lectora.",
		CourseScience:       "Sistemas del cuerpo humano, energía y materia.",
		CourseWork:          "Ofimática y uso de internet como herramienta.",
		CourseEnglish:       "Comprensión de instrucciones básicas y tiempos verbales simples.",
	},
	GradeThird: {
		CourseMath:          "Introducción al álgebra, ecuaciones lineales y porcentajes.",
		CourseCommunication: "Textos argumentativos, redacción y expresión oral.",
		CourseScience:       "Sistemas físicos y biológicos con experimentos.",
		CourseWork:          "Diseño digital y creación de documentos técnicos.",
		CourseEnglish:       "Expresarte en presente y pasado simple, describir tu rutina y gustos.",
	},
	GradeFourth: {
		CourseMath:          "Álgebra, geometría analítica y resolución de problemas.",
		CourseCommunication: "Comprensión crítica de textos y argumentación escrita.",
		CourseScience:       "Cambios químicos, energía y salud ambiental.",
		CourseWork:          "Fundamentos de programación y trabajo colaborativo digital.",
		CourseEnglish:       "Fluidez con tiempos verbales combinados y lectura comprensiva.",
	},
	GradeFifth: {
		CourseMath:          "Ecuaciones, funciones y preparación para estudios superiores.",
		CourseCommunication: "Ensayos, comprensión crítica y expresión formal.",
		CourseScience:       "Genética, física aplicada y proyectos de investigación.",
		CourseWork:          "Proyectos con programación básica y tecnologías digitales.",
		CourseEnglish:       "Consolidación del nivel B1: conversación fluida y redacción funcional.",
	},
}

// CourseDescription returns the syllabus summary for a course in a grade.
func CourseDescription(grade Grade, course CourseLabel) (string, bool) {
	byCourse, ok := courseDescriptions[grade]
	if !ok {
		return "", false
	}
	desc, ok := byCourse[course]
	return desc, ok
}

// Catalog lists every grade/course pair in display order.
func Catalog() []CourseInfo {
	var entries []CourseInfo
	for _, grade := range allGrades {
		for _, course := range allCourses {
			desc, _ := CourseDescription(grade, course)
			entries = append(entries, CourseInfo{
				Grade:       grade,
				Course:      course,
				Description: desc,
			})
		}
	}
	return entries
}
