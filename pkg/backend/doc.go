// Package backend provides the demo "MS Plantilla" data microservice: a small
// net/http handler serving the roster as JSON behind the gateway.
//
// Routes (relative to the mount path):
//
//	GET /                 {"mensaje": "Microservicio MS Plantilla: home"}
//	GET /acercade         {"mensaje", "autor", "email", "fecha"}
//	GET /getTodas         {"data": [Record, ...]}
//	GET /getPorId/{id}    Record, or 404
//
// The roster is seeded from the embedded data/personas.yaml list.
package backend
