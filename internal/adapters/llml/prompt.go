package llml

// systemInstruction is the fixed extraction prompt. It names the target
// fields and the conservative rules: omit over guess, keep phone digits as
// written, normalize registrations to the standard spacing
const systemInstruction = `You extract vehicle-repair booking details from a front-desk note.

Return ONLY a JSON object with exactly these keys, each a string or null:
  customer_name, phone, vehicle, year, registration, issue, notes

Rules:
- If a detail is not stated, use null. Never guess or invent a value.
- phone: preserve the digits and spacing exactly as written in the note.
- registration: normalize UK plates to "AA00 AAA" spacing.
- vehicle: make and model, e.g. "Ford Focus".
- year: a 4-digit year as a string.
- issue: the reported fault or requested work, in the customer's words.
- notes: anything relevant that fits no other field, else null.`
