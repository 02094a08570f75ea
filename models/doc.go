// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - RegisterMemberRequest: display_name, email, password, confirm, avatar_url (form-encoded)
  - LoginRequest: username, password (JSON)

# Response Types

  - RegisterMemberResponse: success, id, display_name, email, member_key
  - LoginResponse: success, role, user
  - FormResponse: success, snapshot
  - IconListResponse: success, folder, icons
  - ErrorResponse: success (always false), message, error

# Catalog Types

Raw rows come straight from the database and keep unparsed text:

  - CategoryRow, SubcategoryRow
  - FieldTypeRow, FieldsetRow, FieldRow
  - Catalog: all of the above for one request

Parsed and computed types make up the snapshot:

  - FieldType, FieldTypeItem, Fieldset, Field
  - FieldDefinition: a field type expanded into a renderable form field
  - Category, Subcategory: the nested tree
  - Snapshot: the tree plus flat lookup maps, icon library, currencies

# Ordering

CompareOrder sorts by sort_order ascending (missing values last), then by
case-insensitive name. Categories, subcategories, and field types all use it.
*/
package models
