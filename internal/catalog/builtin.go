package catalog

import "github.com/jengzang/indicators-dashboard-go/internal/models"

type need = models.RequiredFilters

// Builtin returns the indicators offered by the dashboard
func Builtin() []models.Indicator {
	return []models.Indicator{
		{
			ID: "0", Key: "estudiantes inscritos por localidad",
			DisplayLabel:    "Estudiantes inscritos por localidad",
			RequiredFilters: need{Period: true, Faculty: true},
			MetricKeys:      []string{"t_inscritos"},
			Endpoint:        models.EndpointLocalities,
		},
		{
			ID: "2", Key: "estudiantes nuevos inscritos por carrera",
			DisplayLabel:    "Estudiantes Nuevos inscritos por carrera",
			RequiredFilters: need{Period: true, Locality: true, Faculty: true},
			MetricKeys:      []string{"t_nuevos"},
			Endpoint:        models.EndpointCareers,
		},
		{
			ID: "3", Key: "estudiantes inscritos por facultad",
			DisplayLabel:    "Estudiantes inscritos por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"t_inscritos"},
			Endpoint:        models.EndpointFaculties,
		},
		{
			ID: "5", Key: "estudiantes inscritos por carrera",
			DisplayLabel:    "Estudiantes inscritos por carrera",
			RequiredFilters: need{Period: true, Faculty: true, Locality: true, Modality: true},
			MetricKeys:      []string{"t_inscritos"},
			Endpoint:        models.EndpointCareers,
		},
		{
			ID: "6", Key: "estudiantes inscritos por modalidad",
			DisplayLabel:    "Estudiantes inscritos por modalidad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"t_inscritos"},
			Endpoint:        models.EndpointModes,
		},
		{
			ID: "7", Key: "cantidad de estudiantes titulados por periodo",
			DisplayLabel: "Cantidad de estudiantes titulados por periodo",
			MetricKeys:   []string{"titulados"},
			Endpoint:     models.EndpointSemesters,
		},
		{
			ID: "8", Key: "cantidad de estudiantes titulados por facultad",
			DisplayLabel:    "Cantidad de estudiantes titulados por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"titulados"},
			Endpoint:        models.EndpointFaculties,
		},
		{
			ID: "9", Key: "cantidad de estudiantes egresados por periodo",
			DisplayLabel:    "Cantidad de estudiantes egresados por periodo",
			RequiredFilters: need{Faculty: true, Locality: true, Modality: true, Career: true},
			MetricKeys:      []string{"egresados"},
			Endpoint:        models.EndpointSemesters,
		},
		{
			ID: "10", Key: "cantidad de estudiantes egresados por facultad",
			DisplayLabel:    "Cantidad de estudiantes egresados por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"egresados"},
			Endpoint:        models.EndpointFaculties,
		},
		{
			ID: "11", Key: "comparacion de ingresos vs titulados por periodo",
			DisplayLabel:    "Comparacion de ingresos vs titulados por periodo",
			RequiredFilters: need{Faculty: true, Locality: true, Modality: true, Career: true},
			MetricKeys:      []string{"titulados", "t_nuevos"},
			Endpoint:        models.EndpointSemesters,
		},
		{
			ID: "12", Key: "comparacion de ingresos vs titulados por facultad",
			DisplayLabel:    "Comparacion de ingresos vs titulados por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"titulados", "t_nuevos"},
			Endpoint:        models.EndpointFaculties,
		},
		{
			ID: "13", Key: "porcentaje de deserción por carrera",
			DisplayLabel: "Porcentaje de deserción por carrera",
			MetricKeys:   []string{"reprobados_con_0_percent"},
			Endpoint:     models.EndpointCareers,
		},
		{
			ID: "14", Key: "porcentaje de deserción por facultad",
			DisplayLabel: "Porcentaje de deserción por facultad",
			MetricKeys:   []string{"reprobados_con_0_percent"},
			Endpoint:     models.EndpointFaculties,
		},
		{
			ID: "15", Key: "Rendimiento académico por periodo",
			DisplayLabel: "Rendimiento académico por periodo",
			MetricKeys:   []string{"sin_nota_percent", "aprobados_percent", "reprobados_percent", "moras_percent"},
			Endpoint:     models.EndpointSemesters,
		},
		{
			ID: "16", Key: "Rendimiento académico por facultad",
			DisplayLabel:    "Rendimiento académico por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"sin_nota_percent", "aprobados_percent", "reprobados_percent", "moras_percent"},
			Endpoint:        models.EndpointFaculties,
		},
		{
			ID: "17", Key: "Promedio ponderado semestral (PPS) por periodo",
			DisplayLabel: "Promedio ponderado semestral (PPS) por periodo",
			MetricKeys:   []string{"pps"},
			Endpoint:     models.EndpointSemesters,
		},
		{
			ID: "18", Key: "promedio ponderado semestral (PPS) por facultad",
			DisplayLabel:    "Promedio ponderado semestral (PPS) por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"pps"},
			Endpoint:        models.EndpointFaculties,
		},
		{
			ID: "19", Key: "promedio ponderado acumulado de la carrera (PPAC) por periodo",
			DisplayLabel: "Promedio ponderado acumulado de la carrera (PPAC) por periodo",
			MetricKeys:   []string{"ppac"},
			Endpoint:     models.EndpointSemesters,
		},
		{
			ID: "20", Key: "promedio ponderado acumulado de la carrera (PPAC) por facultad",
			DisplayLabel:    "Promedio ponderado acumulado de la carrera (PPAC) por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"ppac"},
			Endpoint:        models.EndpointFaculties,
		},
		{
			ID: "21", Key: "promedio ponderado acumulado sin cero de la carrera (PPAC) por periodo",
			DisplayLabel: "Promedio ponderado acumulado sin cero de la carrera (PPAC) por periodo",
			MetricKeys:   []string{"ppa1"},
			Endpoint:     models.EndpointSemesters,
		},
		{
			ID: "22", Key: "promedio ponderado acumulado sin cero de la carrera (PPAC) por facultad",
			DisplayLabel:    "Promedio ponderado acumulado sin cero de la carrera (PPAC) por facultad",
			RequiredFilters: need{Period: true},
			MetricKeys:      []string{"ppa1"},
			Endpoint:        models.EndpointFaculties,
		},
	}
}
