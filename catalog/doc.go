// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog loads the questionnaire taxonomy from YAML.

	categories:
	  - numero: 1
	    nombre: Economía y Empleo
	    preguntas:
	      - El Estado debe invertir en programas de empleo para jóvenes.

Default returns the taxonomy embedded in the binary; Load reads an operator
supplied file. Both are validated: numbers positive and unique, names
non-empty and unique, no empty statements.
*/
package catalog
