// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package remote reads snapshots from the platform's REST data store.

# Endpoints

	GET /votante                  → voters
	GET /politico                 → candidates
	GET /politico/{id}            → one candidate
	GET /propuesta                → all proposals
	GET /propuesta/politico/{id}  → proposals owned by a candidate
	GET /votante/preguntas        → questionnaire catalog

# Record Normalization

The store's documents are loosely typed. The client converts them to the
models types:

  - ids may be plain strings or {"$oid": "..."} wrappers
  - edad and categoria_id may be numbers or numeric strings
  - pregunta_id is 1-based and becomes a 0-based question_index
  - a missing or non-integer valoracion becomes 0 and is dropped later
  - validacion values pendiente, valida, invalida map to pending, valid, invalid

The client does not retry; a failed request fails the snapshot load.
*/
package remote
